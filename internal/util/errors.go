package util

import "errors"

var (
	ErrUserNotFound           = errors.New("user not found")
	ErrEmailRegistered        = errors.New("该邮箱已被注册")
	ErrInvalidCredentials     = errors.New("invalid credentials")
	ErrAccountDisabled        = errors.New("user account is inactive")
	ErrPermissionDenied       = errors.New("permission denied")
	ErrProfileNotFound        = errors.New("onboarding profile not found")
	ErrQuestionNotFound       = errors.New("question not found")
	ErrAnswerTypeMismatch     = errors.New("answer value does not match question type")
	ErrQuizAlreadyCompleted   = errors.New("quiz already completed")
	ErrInsufficientProgress   = errors.New("please answer at least 70% of questions before submitting")
	ErrRecommendationNotFound = errors.New("career recommendation not found")
	ErrAIResponseParse        = errors.New("AI response could not be parsed")
	ErrGenerationInProgress   = errors.New("recommendation generation already in progress")
	ErrMaterialNotFound       = errors.New("learning material not found")
)
