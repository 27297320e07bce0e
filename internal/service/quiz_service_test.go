package service

import (
	"career_compass_backend/internal/model"
	"career_compass_backend/internal/util"
	"encoding/json"
	"errors"
	"testing"
	"time"
)

func TestGetQuestionsFilteredByField(t *testing.T) {
	db := newTestDB(t)
	svc := newQuizService(db)
	user := seedUser(t, db, "a@example.com")

	seedQuestion(t, db, "interests", model.QuestionMultipleChoice, nil, 1)
	seedQuestion(t, db, "skills", model.QuestionMultipleChoice, strPtr("Computer Science"), 2)
	seedQuestion(t, db, "skills", model.QuestionMultipleChoice, strPtr("Finance"), 3)

	if err := db.Create(&model.OnboardingProfile{
		UserID:       user.ID,
		FieldOfStudy: "Computer Science",
	}).Error; err != nil {
		t.Fatalf("seed profile: %v", err)
	}

	questions, err := svc.GetQuestionsForUser(user.ID, "")
	if err != nil {
		t.Fatalf("GetQuestionsForUser: %v", err)
	}
	if len(questions) != 2 {
		t.Fatalf("got %d questions, want 2", len(questions))
	}
	for _, q := range questions {
		if q.FieldOfStudy != nil && *q.FieldOfStudy != "Computer Science" {
			t.Fatalf("question from other field leaked: %q", *q.FieldOfStudy)
		}
	}
}

func TestGetQuestionsWithoutProfileReturnsUniversalOnly(t *testing.T) {
	db := newTestDB(t)
	svc := newQuizService(db)
	user := seedUser(t, db, "a@example.com")

	seedQuestion(t, db, "interests", model.QuestionMultipleChoice, nil, 1)
	seedQuestion(t, db, "skills", model.QuestionMultipleChoice, strPtr("Computer Science"), 2)

	questions, err := svc.GetQuestionsForUser(user.ID, "")
	if err != nil {
		t.Fatalf("GetQuestionsForUser: %v", err)
	}
	if len(questions) != 1 {
		t.Fatalf("got %d questions, want 1", len(questions))
	}
	if questions[0].FieldOfStudy != nil {
		t.Fatalf("expected universal question, got field %q", *questions[0].FieldOfStudy)
	}
}

func TestGetQuestionsSectionFilter(t *testing.T) {
	db := newTestDB(t)
	svc := newQuizService(db)
	user := seedUser(t, db, "a@example.com")

	seedQuestion(t, db, "interests", model.QuestionMultipleChoice, nil, 1)
	seedQuestion(t, db, "skills", model.QuestionMultipleChoice, nil, 2)

	questions, err := svc.GetQuestionsForUser(user.ID, "skills")
	if err != nil {
		t.Fatalf("GetQuestionsForUser: %v", err)
	}
	if len(questions) != 1 || questions[0].Section != "skills" {
		t.Fatalf("section filter failed, got %d questions", len(questions))
	}
}

func TestSaveAnswerUpsertsSingleRow(t *testing.T) {
	db := newTestDB(t)
	svc := newQuizService(db)
	user := seedUser(t, db, "a@example.com")
	question := seedQuestion(t, db, "interests", model.QuestionMultipleChoice, nil, 1)

	if _, err := svc.SaveAnswer(user.ID, &QuizAnswerRequest{
		QuestionID: question.ID,
		Answer:     json.RawMessage(`"a"`),
	}); err != nil {
		t.Fatalf("first SaveAnswer: %v", err)
	}
	if _, err := svc.SaveAnswer(user.ID, &QuizAnswerRequest{
		QuestionID: question.ID,
		Answer:     json.RawMessage(`"b"`),
	}); err != nil {
		t.Fatalf("second SaveAnswer: %v", err)
	}

	var answers []model.QuizAnswer
	if err := db.Where("user_id = ?", user.ID).Find(&answers).Error; err != nil {
		t.Fatalf("load answers: %v", err)
	}
	if len(answers) != 1 {
		t.Fatalf("got %d answer rows, want 1", len(answers))
	}
	if string(answers[0].Answer) != `"b"` {
		t.Fatalf("answer not overwritten: %s", answers[0].Answer)
	}
}

func TestSaveAnswerUnknownQuestion(t *testing.T) {
	db := newTestDB(t)
	svc := newQuizService(db)
	user := seedUser(t, db, "a@example.com")

	_, err := svc.SaveAnswer(user.ID, &QuizAnswerRequest{
		QuestionID: 999,
		Answer:     json.RawMessage(`"a"`),
	})
	if !errors.Is(err, util.ErrQuestionNotFound) {
		t.Fatalf("err = %v, want ErrQuestionNotFound", err)
	}
}

func TestSaveAnswerTypeMismatch(t *testing.T) {
	db := newTestDB(t)
	svc := newQuizService(db)
	user := seedUser(t, db, "a@example.com")

	multi := seedQuestion(t, db, "skills", model.QuestionMultiSelect, nil, 1)
	scale := seedQuestion(t, db, "interests", model.QuestionScale, nil, 2)
	choice := seedQuestion(t, db, "values", model.QuestionMultipleChoice, nil, 3)

	cases := []struct {
		name       string
		questionID uint
		answer     string
		wantErr    bool
	}{
		{"multi_select rejects string", multi.ID, `"a"`, true},
		{"multi_select accepts array", multi.ID, `["a","b"]`, false},
		{"scale accepts number", scale.ID, `4`, false},
		{"scale accepts string", scale.ID, `"4"`, false},
		{"scale rejects array", scale.ID, `[4]`, true},
		{"multiple_choice rejects number", choice.ID, `4`, true},
		{"multiple_choice accepts string", choice.ID, `"a"`, false},
	}

	for _, tc := range cases {
		_, err := svc.SaveAnswer(user.ID, &QuizAnswerRequest{
			QuestionID: tc.questionID,
			Answer:     json.RawMessage(tc.answer),
		})
		if tc.wantErr && !errors.Is(err, util.ErrAnswerTypeMismatch) {
			t.Fatalf("%s: err = %v, want ErrAnswerTypeMismatch", tc.name, err)
		}
		if !tc.wantErr && err != nil {
			t.Fatalf("%s: unexpected err %v", tc.name, err)
		}
	}
}

func TestSubmissionSnapshotFrozen(t *testing.T) {
	db := newTestDB(t)
	svc := newQuizService(db)
	user := seedUser(t, db, "a@example.com")

	seedQuestion(t, db, "interests", model.QuestionMultipleChoice, nil, 1)
	seedQuestion(t, db, "skills", model.QuestionMultipleChoice, nil, 2)

	submission, err := svc.GetOrCreateSubmission(user.ID)
	if err != nil {
		t.Fatalf("GetOrCreateSubmission: %v", err)
	}
	if submission.TotalQuestions != 2 {
		t.Fatalf("total = %d, want 2", submission.TotalQuestions)
	}

	// 创建之后题库扩容不影响已有快照
	seedQuestion(t, db, "values", model.QuestionMultipleChoice, nil, 3)

	progress, err := svc.GetProgress(user.ID)
	if err != nil {
		t.Fatalf("GetProgress: %v", err)
	}
	if progress.TotalQuestions != 2 {
		t.Fatalf("snapshot changed: total = %d, want 2", progress.TotalQuestions)
	}
}

func TestProgressTracksSections(t *testing.T) {
	db := newTestDB(t)
	svc := newQuizService(db)
	user := seedUser(t, db, "a@example.com")

	q1 := seedQuestion(t, db, "interests", model.QuestionMultipleChoice, nil, 1)
	q2 := seedQuestion(t, db, "skills", model.QuestionMultipleChoice, nil, 2)
	seedQuestion(t, db, "values", model.QuestionMultipleChoice, nil, 3)

	for _, q := range []*model.QuizQuestion{q1, q2} {
		if _, err := svc.SaveAnswer(user.ID, &QuizAnswerRequest{
			QuestionID: q.ID,
			Answer:     json.RawMessage(`"a"`),
		}); err != nil {
			t.Fatalf("SaveAnswer: %v", err)
		}
	}

	progress, err := svc.GetProgress(user.ID)
	if err != nil {
		t.Fatalf("GetProgress: %v", err)
	}
	if progress.AnsweredQuestions != 2 {
		t.Fatalf("answered = %d, want 2", progress.AnsweredQuestions)
	}
	if progress.ProgressPercentage != 66.67 {
		t.Fatalf("percentage = %v, want 66.67", progress.ProgressPercentage)
	}
	if len(progress.CompletedSections) != 2 {
		t.Fatalf("sections = %v, want 2 entries", progress.CompletedSections)
	}
}

func TestSubmitBelowThreshold(t *testing.T) {
	db := newTestDB(t)
	svc := newQuizService(db)
	user := seedUser(t, db, "a@example.com")

	questions := make([]*model.QuizQuestion, 0, 10)
	for i := 0; i < 10; i++ {
		questions = append(questions, seedQuestion(t, db, "interests", model.QuestionMultipleChoice, nil, i+1))
	}

	// 10题答6题，低于70%
	for _, q := range questions[:6] {
		if _, err := svc.SaveAnswer(user.ID, &QuizAnswerRequest{
			QuestionID: q.ID,
			Answer:     json.RawMessage(`"a"`),
		}); err != nil {
			t.Fatalf("SaveAnswer: %v", err)
		}
	}

	_, err := svc.Submit(user.ID)
	if !errors.Is(err, util.ErrInsufficientProgress) {
		t.Fatalf("err = %v, want ErrInsufficientProgress", err)
	}
}

func TestSubmitAtThresholdCompletes(t *testing.T) {
	db := newTestDB(t)
	svc := newQuizService(db)
	user := seedUser(t, db, "a@example.com")

	questions := make([]*model.QuizQuestion, 0, 10)
	for i := 0; i < 10; i++ {
		questions = append(questions, seedQuestion(t, db, "interests", model.QuestionMultipleChoice, nil, i+1))
	}

	// 恰好70%
	for _, q := range questions[:7] {
		if _, err := svc.SaveAnswer(user.ID, &QuizAnswerRequest{
			QuestionID: q.ID,
			Answer:     json.RawMessage(`"a"`),
		}); err != nil {
			t.Fatalf("SaveAnswer: %v", err)
		}
	}

	submission, err := svc.Submit(user.ID)
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if !submission.IsCompleted || submission.SubmittedAt == nil {
		t.Fatalf("submission not marked completed: %+v", submission)
	}

	_, err = svc.Submit(user.ID)
	if !errors.Is(err, util.ErrQuizAlreadyCompleted) {
		t.Fatalf("err = %v, want ErrQuizAlreadyCompleted", err)
	}
}

func TestDeactivatedQuestionAnswersStillCount(t *testing.T) {
	db := newTestDB(t)
	svc := newQuizService(db)
	user := seedUser(t, db, "a@example.com")

	questions := make([]*model.QuizQuestion, 0, 10)
	for i := 0; i < 10; i++ {
		questions = append(questions, seedQuestion(t, db, "interests", model.QuestionMultipleChoice, nil, i+1))
	}
	for _, q := range questions[:7] {
		if _, err := svc.SaveAnswer(user.ID, &QuizAnswerRequest{
			QuestionID: q.ID,
			Answer:     json.RawMessage(`"a"`),
		}); err != nil {
			t.Fatalf("SaveAnswer: %v", err)
		}
	}

	// 下架一道已作答的题目，答案依然有效，否则用户会被永久卡在门槛之下
	if err := svc.DeactivateQuestion(questions[0].ID); err != nil {
		t.Fatalf("DeactivateQuestion: %v", err)
	}

	if _, err := svc.SaveAnswer(user.ID, &QuizAnswerRequest{
		QuestionID: questions[1].ID,
		Answer:     json.RawMessage(`"b"`),
	}); err != nil {
		t.Fatalf("SaveAnswer after deactivate: %v", err)
	}

	progress, err := svc.GetProgress(user.ID)
	if err != nil {
		t.Fatalf("GetProgress: %v", err)
	}
	if progress.AnsweredQuestions != 7 {
		t.Fatalf("answered = %d, want 7", progress.AnsweredQuestions)
	}

	submission, err := svc.Submit(user.ID)
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if !submission.IsCompleted {
		t.Fatalf("submission should be completed")
	}
}

func TestListAllQuestionsIncludesInactive(t *testing.T) {
	db := newTestDB(t)
	svc := newQuizService(db)

	seedQuestion(t, db, "interests", model.QuestionMultipleChoice, nil, 1)
	q2 := seedQuestion(t, db, "skills", model.QuestionMultipleChoice, nil, 2)

	if err := svc.DeactivateQuestion(q2.ID); err != nil {
		t.Fatalf("DeactivateQuestion: %v", err)
	}

	questions, err := svc.ListAllQuestions()
	if err != nil {
		t.Fatalf("ListAllQuestions: %v", err)
	}
	if len(questions) != 2 {
		t.Fatalf("got %d questions, want 2", len(questions))
	}
}

func TestUpdateQuestionSparse(t *testing.T) {
	db := newTestDB(t)
	svc := newQuizService(db)
	question := seedQuestion(t, db, "interests", model.QuestionMultipleChoice, nil, 1)

	updated, err := svc.UpdateQuestion(question.ID, &QuestionUpdateRequest{
		QuestionText: strPtr("updated text"),
		IsActive:     boolPtr(false),
	})
	if err != nil {
		t.Fatalf("UpdateQuestion: %v", err)
	}
	if updated.QuestionText != "updated text" || updated.IsActive {
		t.Fatalf("update not applied: %+v", updated)
	}

	// 未提供的字段保持不变
	if updated.Section != "interests" || updated.Order != 1 {
		t.Fatalf("untouched fields changed: %+v", updated)
	}
}

func TestUpdateQuestionNotFound(t *testing.T) {
	db := newTestDB(t)
	svc := newQuizService(db)

	_, err := svc.UpdateQuestion(999, &QuestionUpdateRequest{QuestionText: strPtr("x")})
	if !errors.Is(err, util.ErrQuestionNotFound) {
		t.Fatalf("err = %v, want ErrQuestionNotFound", err)
	}
}

func TestSubmissionPicksLatest(t *testing.T) {
	db := newTestDB(t)
	svc := newQuizService(db)
	user := seedUser(t, db, "a@example.com")

	old := model.QuizSubmission{
		BaseModel:         model.BaseModel{CreatedAt: time.Now().Add(-2 * time.Hour)},
		UserID:            user.ID,
		TotalQuestions:    5,
		CompletedSections: json.RawMessage("[]"),
	}
	latest := model.QuizSubmission{
		BaseModel:         model.BaseModel{CreatedAt: time.Now().Add(-time.Hour)},
		UserID:            user.ID,
		TotalQuestions:    8,
		CompletedSections: json.RawMessage("[]"),
	}
	if err := db.Create(&old).Error; err != nil {
		t.Fatalf("seed old submission: %v", err)
	}
	if err := db.Create(&latest).Error; err != nil {
		t.Fatalf("seed latest submission: %v", err)
	}

	submission, err := svc.GetOrCreateSubmission(user.ID)
	if err != nil {
		t.Fatalf("GetOrCreateSubmission: %v", err)
	}
	if submission.TotalQuestions != 8 {
		t.Fatalf("got total %d, want latest submission with 8", submission.TotalQuestions)
	}
}
