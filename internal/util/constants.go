package util

const (
	DateFormat = "2006-01-02"
	TimeFormat = "2006-01-02 15:04:05"
)

const (
	TokenTypeAccess  = "access"
	TokenTypeRefresh = "refresh"
)

// 测验提交门槛：已答题数需达到总题数的70%
const QuizSubmitThreshold = 0.7

// 档案完成度按14个字段计算
const OnboardingTrackedFields = 14
