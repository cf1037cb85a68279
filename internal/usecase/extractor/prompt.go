package extractor

// extractionTemplate turns a free-text request into a canonical search query
// plus metadata filters drawn from a closed dimension set.
const extractionTemplate = `당신은 사용자의 자연어 요청을 분석하여 검색 쿼리와 필터를 생성하는 전문가입니다.

사용자 요청: {query}
사용 가능한 필터: {availableFilters}
컨텍스트: {context}

다음을 수행해주세요:
1. 사용자 요청에서 핵심 검색 키워드를 추출
2. 메타데이터 필터 조건을 식별
3. 검색 전략을 결정

JSON 형태로만 응답해주세요:
{
  "searchQuery": "의미 검색용 쿼리",
  "filters": {
    "season": "여름",
    "purpose": "홍보",
    "style": "시원한",
    "hasImage": false
  },
  "reasoning": "분석 근거",
  "confidence": 0.95
}

필터 예시:
- season: "봄", "여름", "가을", "겨울"
- purpose: "홍보", "안내", "이벤트", "일반"
- style: "시원한", "따뜻한", "경쾌한", "차분한"
- hasImage: true, false
- category: "음식점", "숙박", "카페", "기타"`

const extractionSystem = "검색 쿼리 추출기. 반드시 유효한 JSON 객체 하나만 출력한다."
