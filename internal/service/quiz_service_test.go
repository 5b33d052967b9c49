// internal/service/quiz_service_test.go
package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go_hsk_flashcard/internal/model"
	"go_hsk_flashcard/internal/repository/mocks"
)

// newQuizForTest runs without a history database; recordHistory is a no-op
// when db is nil, so the revision-set behavior is isolated.
func newQuizForTest(revRepo *mocks.RevisionRepository) QuizService {
	return NewQuizService(nil, revRepo, new(mocks.HistoryRepository), NewSeededShuffler(42))
}

func TestQuizService_Start_RejectsEmpty(t *testing.T) {
	ctx := context.Background()
	quiz := newQuizForTest(new(mocks.RevisionRepository))

	_, err := quiz.Start(ctx, nil, ModeTest, 1)
	assert.ErrorIs(t, err, model.ErrNoPriorPatches)

	_, err = quiz.Start(ctx, nil, ModeRevisionPractice, 1)
	assert.ErrorIs(t, err, model.ErrEmptyRevision)

	_, err = quiz.Start(ctx, nil, ModeRevisionTest, 1)
	assert.ErrorIs(t, err, model.ErrEmptyRevision)

	_, err = quiz.Start(ctx, nil, ModeLearn, 1)
	assert.ErrorIs(t, err, model.ErrInvalidInput)
}

func TestQuizService_TestMode_ScoresAndCollectsWrongAnswers(t *testing.T) {
	ctx := context.Background()
	words := []model.Word{
		{Chinese: "你好", Pinyin: "nǐ hǎo", Meaning: "hello"},
		{Chinese: "谢谢", Pinyin: "xiè xie", Meaning: "thanks"},
		{Chinese: "再见", Pinyin: "zài jiàn", Meaning: "goodbye"},
		{Chinese: "月", Pinyin: "yuè", Meaning: "moon"},
	}
	revRepo := new(mocks.RevisionRepository)
	quiz := newQuizForTest(revRepo)

	session, err := quiz.Start(ctx, words, ModeTest, 1)
	require.NoError(t, err)

	wrongOn := 2 // answer the second question wrong
	asked := 0
	for {
		q, err := quiz.NextQuestion(ctx, session)
		require.NoError(t, err)
		if q == nil {
			break
		}
		assert.Equal(t, PromptChinese, q.Prompt, "tests always show the Chinese form")
		assert.Equal(t, len(words), q.Total)
		asked++
		assert.Equal(t, asked, q.Number)

		// The prompt is the Chinese form, so look the word back up.
		var word model.Word
		for _, w := range words {
			if w.Chinese == q.Text {
				word = w
			}
		}
		answer := word.Pinyin
		if asked == wrongOn {
			answer = "wrong1"
			revRepo.On("Add", ctx, word).Return(nil).Once()
		}

		result, err := quiz.SubmitAnswer(ctx, session, answer)
		require.NoError(t, err)
		assert.Equal(t, asked != wrongOn, result.Correct)
		assert.Equal(t, word, result.Word)
	}

	assert.Equal(t, len(words), asked)
	summary, err := quiz.Finish(ctx, session)
	require.NoError(t, err)
	assert.Equal(t, 4, summary.Asked)
	assert.Equal(t, 3, summary.Correct)
	assert.InDelta(t, 75.0, summary.Score, 0.001)
	revRepo.AssertExpectations(t)
}

func TestQuizService_RevisionTest_RemovesCorrectAnswers(t *testing.T) {
	ctx := context.Background()
	words := []model.Word{
		{Chinese: "水", Pinyin: "shuǐ", Meaning: "water"},
		{Chinese: "火", Pinyin: "huǒ", Meaning: "fire"},
		{Chinese: "山", Pinyin: "shān", Meaning: "mountain"},
	}
	revRepo := new(mocks.RevisionRepository)
	quiz := newQuizForTest(revRepo)

	session, err := quiz.Start(ctx, words, ModeRevisionTest, 1)
	require.NoError(t, err)

	byChinese := map[string]model.Word{}
	for _, w := range words {
		byChinese[w.Chinese] = w
	}

	// First two right, last one wrong.
	answered := 0
	for {
		q, err := quiz.NextQuestion(ctx, session)
		require.NoError(t, err)
		if q == nil {
			break
		}
		answered++
		word := byChinese[q.Text]
		answer := word.Pinyin
		if answered == 3 {
			answer = "nope2"
		} else {
			revRepo.On("Remove", ctx, word).Return(nil).Once()
		}
		_, err = quiz.SubmitAnswer(ctx, session, answer)
		require.NoError(t, err)
	}

	summary, err := quiz.Finish(ctx, session)
	require.NoError(t, err)
	assert.Equal(t, 2, summary.Removed)
	assert.Equal(t, 1, summary.Remaining)
	revRepo.AssertExpectations(t)

	// Finish is idempotent and keeps the first report.
	again, err := quiz.Finish(ctx, session)
	require.NoError(t, err)
	assert.Equal(t, summary, again)
}

func TestQuizService_LearnMode_IsEndless(t *testing.T) {
	ctx := context.Background()
	words := []model.Word{
		{Chinese: "一", Pinyin: "yī", Meaning: "one"},
		{Chinese: "二", Pinyin: "èr", Meaning: "two"},
	}
	quiz := newQuizForTest(new(mocks.RevisionRepository))

	session, err := quiz.Start(ctx, words, ModeLearn, 1)
	require.NoError(t, err)

	// Far beyond the list length; the session reshuffles and keeps going.
	for i := 1; i <= 7; i++ {
		q, err := quiz.NextQuestion(ctx, session)
		require.NoError(t, err)
		require.NotNil(t, q)
		assert.Equal(t, 0, q.Total, "endless sessions report no total")
		assert.Equal(t, i, q.Number)
		_, err = quiz.SubmitAnswer(ctx, session, "whatever1")
		require.NoError(t, err)
	}

	summary, err := quiz.Finish(ctx, session)
	require.NoError(t, err)
	assert.Equal(t, 7, summary.Asked)
}

func TestQuizService_NextQuestion_IsStableUntilAnswered(t *testing.T) {
	ctx := context.Background()
	words := []model.Word{{Chinese: "好", Pinyin: "hǎo", Meaning: "good"}}
	quiz := newQuizForTest(new(mocks.RevisionRepository))

	session, err := quiz.Start(ctx, words, ModeLearn, 1)
	require.NoError(t, err)

	q1, err := quiz.NextQuestion(ctx, session)
	require.NoError(t, err)
	q2, err := quiz.NextQuestion(ctx, session)
	require.NoError(t, err)
	assert.Same(t, q1, q2, "asking again without answering returns the same question")
}

func TestQuizService_SubmitWithoutQuestion(t *testing.T) {
	ctx := context.Background()
	words := []model.Word{{Chinese: "好", Pinyin: "hǎo", Meaning: "good"}}
	quiz := newQuizForTest(new(mocks.RevisionRepository))

	session, err := quiz.Start(ctx, words, ModeLearn, 1)
	require.NoError(t, err)

	_, err = quiz.SubmitAnswer(ctx, session, "hao3")
	assert.ErrorIs(t, err, model.ErrInvalidInput)
}

func TestQuizService_FinishedSessionRejectsPlay(t *testing.T) {
	ctx := context.Background()
	words := []model.Word{{Chinese: "好", Pinyin: "hǎo", Meaning: "good"}}
	quiz := newQuizForTest(new(mocks.RevisionRepository))

	session, err := quiz.Start(ctx, words, ModeLearn, 1)
	require.NoError(t, err)
	_, err = quiz.Finish(ctx, session)
	require.NoError(t, err)

	_, err = quiz.NextQuestion(ctx, session)
	assert.ErrorIs(t, err, model.ErrSessionFinished)
	_, err = quiz.SubmitAnswer(ctx, session, "hao3")
	assert.ErrorIs(t, err, model.ErrSessionFinished)
}

func TestQuizService_AnswerRevealsDigitPinyin(t *testing.T) {
	ctx := context.Background()
	words := []model.Word{{Chinese: "你好", Pinyin: "nǐ hǎo", Meaning: "hello"}}
	quiz := newQuizForTest(new(mocks.RevisionRepository))

	session, err := quiz.Start(ctx, words, ModeLearn, 1)
	require.NoError(t, err)

	_, err = quiz.NextQuestion(ctx, session)
	require.NoError(t, err)
	result, err := quiz.SubmitAnswer(ctx, session, "ni3hao3")
	require.NoError(t, err)
	assert.True(t, result.Correct)
	assert.Equal(t, "ni3 hao3", result.Pinyin)
}
