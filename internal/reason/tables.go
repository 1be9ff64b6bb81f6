package reason

// Info 原因的展示信息
type Info struct {
	Code        Code   `json:"code"`
	Label       string `json:"label"`
	Emoji       string `json:"emoji"`
	Description string `json:"description"`
	Details     string `json:"details"`
}

// HasReason 空标签表示没有原因，界面上不可点击
func (i Info) HasReason() bool {
	return i.Label != ""
}

const leverageNote = " (Bybit 5x 레버리지)"

var longTable = map[Code]Info{
	EntrySquirrel: {
		Label:       "다람쥐 진입",
		Emoji:       "🐿️",
		Description: "최근에 이 코인이 크게 상승한 적이 있어요!",
		Details:     "과거에 가격이 크게 오른 날이 있었고(기관 매수 신호), 지금은 잠시 조정을 받으며 쉬고 있는 상태예요. 거래량이 줄어든 것은 \"팔 사람은 다 팔았다\"는 뜻이에요. 조용히 힘을 모은 후 다시 상승할 가능성이 높아서 매수했어요.",
	},
	EntryMorning: {
		Label:       "샛별형 진입",
		Emoji:       "⭐",
		Description: "어두운 밤(하락) 뒤에 새벽(반등)이 올 것 같아요!",
		Details:     "가격이 계속 떨어지다가 바닥을 찍고 반등하는 패턴이 나타났어요. 마치 롤러코스터가 내려가다가 바닥을 찍고 다시 올라가는 것처럼요. 기술적으로 바닥 신호가 나타나서 매수했어요.",
	},
	EntryInvertedHammer: {
		Label:       "윗꼬리양봉 진입",
		Emoji:       "🔨",
		Description: "하락하다가 강한 반등 신호가 나타났어요!",
		Details:     "가격이 떨어지던 중, 한 번 크게 올랐다가 내려온 캔들(긴 윗꼬리)이 나타났어요. 이건 \"매수세가 들어오고 있다\"는 신호예요. 바닥 근처에서 이 신호가 나오면 반등할 가능성이 높아서 매수했어요.",
	},
	EntryDivergence: {
		Label:       "다이버전스 진입",
		Emoji:       "📊",
		Description: "가격은 내려갔는데 지표는 올라갔어요!",
		Details:     "RSI가 가격과 반대로 움직이는 \"다이버전스\"가 발생했어요. 이건 하락세가 힘을 잃고 있다는 강력한 반등 신호예요.",
	},
	EntryHarmonic: {
		Label:       "하모닉 진입",
		Emoji:       "🎯",
		Description: "피보나치 반전 포인트(D점)에 도달했어요!",
		Details:     "가격이 수학적으로 계산된 정확한 반전 지점에 도달했어요. 가틀리/배트 패턴의 D점은 높은 확률로 반등이 시작되는 자리예요.",
	},
	EntryLeadingDiagonal: {
		Label:       "리딩다이아 진입",
		Emoji:       "📐",
		Description: "하락 쐐기 패턴을 상단 돌파했어요!",
		Details:     "가격이 삼각형 모양으로 수렴하다가 위쪽으로 터져나왔어요. 새로운 상승 추세가 시작되는 강력한 신호예요.",
	},

	// 合约按策略名匹配
	LongDivergence: {
		Label:       "다이버전스 롱",
		Emoji:       "📊",
		Description: "가격은 내려갔는데 지표는 올라갔어요!",
		Details:     "RSI가 가격과 반대로 움직이는 \"다이버전스\"가 발생했어요. 이건 하락세가 힘을 잃고 있다는 강력한 반등 신호예요." + leverageNote,
	},
	LongHarmonic: {
		Label:       "하모닉 롱",
		Emoji:       "🎯",
		Description: "피보나치 반전 포인트(D점)에 도달했어요!",
		Details:     "가격이 수학적으로 계산된 정확한 반전 지점에 도달했어요. 가틀리/배트 패턴의 D점은 높은 확률로 반등이 시작되는 자리예요." + leverageNote,
	},
	LongLeadingDiagonal: {
		Label:       "리딩다이아 롱",
		Emoji:       "📐",
		Description: "하락 쐐기 패턴을 상단 돌파했어요!",
		Details:     "가격이 삼각형 모양으로 수렴하다가 위쪽으로 터져나왔어요. 새로운 상승 추세가 시작되는 강력한 신호예요." + leverageNote,
	},
	LongSquirrel: {
		Label:       "다람쥐 롱",
		Emoji:       "🐿️",
		Description: "최근에 크게 상승한 적이 있어요!",
		Details:     "과거에 가격이 크게 오른 날이 있었고, 지금은 잠시 조정을 받으며 쉬고 있는 상태예요." + leverageNote,
	},
	LongMorning: {
		Label:       "샛별형 롱",
		Emoji:       "⭐",
		Description: "하락 뒤에 반등이 올 것 같아요!",
		Details:     "가격이 계속 떨어지다가 바닥을 찍고 반등하는 패턴이 나타났어요." + leverageNote,
	},
	LongInvertedHammer: {
		Label:       "윗꼬리양봉 롱",
		Emoji:       "🔨",
		Description: "강한 반등 신호가 나타났어요!",
		Details:     "가격이 떨어지던 중, 한 번 크게 올랐다가 내려온 캔들이 나타났어요." + leverageNote,
	},
}

var shortTable = map[Code]Info{
	ShortBearishDivergence: {
		Label:       "하락 다이버전스",
		Emoji:       "📉",
		Description: "가격과 지표가 엇갈리고 있어요! 하락 가능성이 높아요.",
		Details:     "가격은 높은 고점을 찍었는데, RSI 지표는 낮은 고점을 찍었어요. 이건 상승 힘이 약해지고 있다는 의미예요. 곧 가격이 떨어질 가능성이 높아서 숏 진입했어요." + leverageNote,
	},
	ShortEveningStar: {
		Label:       "석양형",
		Emoji:       "🌅",
		Description: "상승 후 반전 신호가 나타났어요!",
		Details:     "3개의 캔들이 연속으로 나타나서 \"상승→망설임→하락\" 패턴을 보였어요. 해가 지듯이 상승 추세가 끝나고 하락이 시작될 신호예요." + leverageNote,
	},
	ShortShootingStar: {
		Label:       "유성형",
		Emoji:       "💫",
		Description: "위로 쏘았다가 다시 내려온 캔들이에요!",
		Details:     "가격이 한 번 크게 올랐다가 다시 떨어진 캔들이 나타났어요. 위쪽에서 강한 저항을 받았다는 의미로, 하락 가능성이 높아요." + leverageNote,
	},
	ShortBearishEngulfing: {
		Label:       "하락 장악형",
		Emoji:       "🐻",
		Description: "큰 음봉이 이전 양봉을 완전히 덮었어요!",
		Details:     "작은 양봉 다음에 훨씬 큰 음봉이 나타나서 완전히 덮어버렸어요. 매도 세력이 강하게 장악했다는 의미로, 하락 추세로 전환될 신호예요." + leverageNote,
	},
	ShortBreakdown: {
		Label:       "이탈 하락",
		Emoji:       "📐",
		Description: "지지선을 뚫고 하락했어요!",
		Details:     "가격이 삼각형 모양으로 수렴하다가 아래쪽으로 뚫렸어요. 새로운 하락 추세가 시작되는 강력한 신호예요." + leverageNote,
	},
}

var exitTable = map[Code]Info{
	TakeProfit: {
		Label:       "익절",
		Emoji:       "💰",
		Description: "익절 목표가에 도달했어요!",
		Details:     "매수할 때 설정한 목표가(TP)에 도달해서 전량 청산했어요. 수익을 확정하는 것이 중요해요!",
	},
	StopLoss: {
		Label:       "손절",
		Emoji:       "🛑",
		Description: "손절가에 도달해서 손실을 제한했어요.",
		Details:     "매수할 때 설정한 손절가(SL)에 도달해서 전량 청산했어요. 더 큰 손실을 막기 위해 빠르게 정리했어요. 손절은 나쁜 게 아니라, 자산을 지키는 현명한 선택이에요!",
	},
	PanicSell: {
		Label:       "긴급매도",
		Emoji:       "🚨",
		Description: "긴급 전량 매도를 실행했어요.",
		Details:     "사용자가 직접 \"전량 매도\" 버튼을 눌러서 모든 코인을 즉시 팔았어요.",
	},
	ManualClose: {
		Label:       "수동 청산",
		Emoji:       "👆",
		Description: "사용자가 직접 청산했어요.",
		Details:     "사용자가 직접 청산 버튼을 눌러서 포지션을 정리했어요.",
	},
}

// known 所有表中出现过的代码
var known = func() map[Code]struct{} {
	m := make(map[Code]struct{})
	for _, table := range []map[Code]Info{longTable, shortTable, exitTable} {
		for code := range table {
			m[code] = struct{}{}
		}
	}
	return m
}()

func entryFallback(longOpen bool) Info {
	label := "진입"
	if longOpen {
		label = "롱 진입"
	}
	return Info{
		Label:       label,
		Emoji:       "📈",
		Description: "전략 조건 충족! 좋은 매수 기회예요.",
		Details:     "봇이 분석한 결과, 이 코인이 상승할 가능성이 높다고 판단해서 매수했어요.",
	}
}

var shortFallback = Info{
	Label:       "숏 진입",
	Emoji:       "📉",
	Description: "하락 신호 감지! 숏 포지션을 잡았어요.",
	Details:     "봇이 분석한 결과, 이 코인이 하락할 가능성이 높다고 판단해서 숏 진입했어요." + leverageNote,
}

func rawEcho(raw string) Info {
	return Info{
		Code:        Unrecognized,
		Label:       raw,
		Emoji:       "📝",
		Description: "사유: " + raw,
		Details:     "상세 정보가 없습니다.",
	}
}
