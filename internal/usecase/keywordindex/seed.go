package keywordindex

import "github.com/sodam-cloud/kbrouter/internal/domain/vocabulary"

// seedEntries returns the curated default vocabulary loaded into the system
// tenant on Init, before any persisted entries are applied on top.
func seedEntries() []vocabulary.Entry {
	return []vocabulary.Entry{
		vocabulary.Reconstruct(
			"고요함", vocabulary.CategoryEmotion,
			[]string{"평온", "차분함", "잔잔함", "고요", "조용함"},
			[]string{"평온", "차분함", "잔잔함"},
			[]string{"시끄러움", "떠들썩함", "격렬함"},
			"40-50대 가족, 자연, 힐링", 3,
			[]string{"40대", "50대", "가족"},
		),
		vocabulary.Reconstruct(
			"로맨틱", vocabulary.CategoryEmotion,
			[]string{"사랑", "달콤함", "설렘", "로맨스", "감성"},
			[]string{"사랑스러움", "달콤함", "설렘"},
			[]string{"차갑음", "무관심", "냉정함"},
			"커플, 데이트, 특별한 날", 7,
			[]string{"커플", "20대", "30대"},
		),
		vocabulary.Reconstruct(
			"정중함", vocabulary.CategoryTone,
			[]string{"공손함", "예의바름", "정중", "매너"},
			[]string{"공손함", "예의바름", "매너"},
			[]string{"무례함", "거만함", "무관심"},
			"고급스러운 서비스, 연령대 높은 고객", 5,
			[]string{"40대", "50대", "60대"},
		),
		vocabulary.Reconstruct(
			"친근함", vocabulary.CategoryTone,
			[]string{"따뜻함", "편안함", "친구같음", "친근"},
			[]string{"따뜻함", "편안함", "친구같음"},
			[]string{"차갑음", "거리감", "공식적"},
			"MZ세대, 친구같은 분위기", 6,
			[]string{"20대", "30대", "MZ세대"},
		),
		vocabulary.Reconstruct(
			"과장", vocabulary.CategoryForbidden,
			[]string{"허위", "거짓", "과대광고", "클릭베이트"},
			[]string{"허위", "거짓", "과대광고"},
			[]string{"정직함", "신뢰성", "진실"},
			"모든 마케팅 콘텐츠에서 금지", 10,
			nil,
		),
		vocabulary.Reconstruct(
			"클릭베이트", vocabulary.CategoryForbidden,
			[]string{"자극적", "과장", "허위", "낚시"},
			[]string{"자극적", "과장", "허위"},
			[]string{"신뢰성", "정직함", "진실"},
			"모든 마케팅 콘텐츠에서 금지", 10,
			nil,
		),
		vocabulary.Reconstruct(
			"자연", vocabulary.CategoryRequired,
			[]string{"숲", "산", "바다", "풍경", "힐링"},
			[]string{"숲", "산", "바다", "풍경"},
			[]string{"도시", "인공", "콘크리트"},
			"펜션, 힐링, 자연 휴양", 8,
			[]string{"힐링 추구 고객", "자연 선호 고객"},
		),
	}
}
