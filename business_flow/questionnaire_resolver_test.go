package businessflow_test

import (
	"context"
	"testing"

	businessflow "github.com/attestix/attestix/business_flow"
	testingutil "github.com/attestix/attestix/testing"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQuestionnaireStructureResolver(t *testing.T) {
	t.Run("FlattensHierarchyInOrder", func(t *testing.T) {
		fixtures := testingutil.NewFixtures()
		fixtures.AddQuestionnaire(7, 1)
		// Two sections, the first with two steps
		fixtures.AddSection(1, 7, false)
		fixtures.AddSection(2, 7, false)
		fixtures.AddStep(10, 1, false)
		fixtures.AddStep(11, 1, false)
		fixtures.AddStep(12, 2, false)
		fixtures.AddQuestion(101, 10, false)
		fixtures.AddQuestion(102, 10, false)
		fixtures.AddQuestion(103, 11, false)
		fixtures.AddQuestion(104, 12, false)

		resolver := businessflow.NewQuestionnaireStructureResolver(fixtures.QuestionnaireRepo, nil, nil)

		ids, err := resolver.Resolve(context.Background(), 7)
		require.NoError(t, err)
		assert.Equal(t, []uint{101, 102, 103, 104}, ids)
	})

	t.Run("SkipsSoftDeletedNodesAtEveryLevel", func(t *testing.T) {
		fixtures := testingutil.NewFixtures()
		fixtures.AddQuestionnaire(7, 1)
		fixtures.AddSection(1, 7, false)
		fixtures.AddSection(2, 7, true) // deleted section hides its subtree
		fixtures.AddStep(10, 1, false)
		fixtures.AddStep(11, 1, true) // deleted step hides its questions
		fixtures.AddStep(12, 2, false)
		fixtures.AddQuestion(101, 10, false)
		fixtures.AddQuestion(102, 10, true) // deleted question skipped
		fixtures.AddQuestion(103, 11, false)
		fixtures.AddQuestion(104, 12, false)

		resolver := businessflow.NewQuestionnaireStructureResolver(fixtures.QuestionnaireRepo, nil, nil)

		ids, err := resolver.Resolve(context.Background(), 7)
		require.NoError(t, err)
		assert.Equal(t, []uint{101}, ids)
	})

	t.Run("EmptyQuestionnaireIsAnError", func(t *testing.T) {
		fixtures := testingutil.NewFixtures()
		fixtures.AddQuestionnaire(7, 1)
		fixtures.AddSection(1, 7, false)
		fixtures.AddStep(10, 1, false)

		resolver := businessflow.NewQuestionnaireStructureResolver(fixtures.QuestionnaireRepo, nil, nil)

		_, err := resolver.Resolve(context.Background(), 7)
		require.ErrorIs(t, err, businessflow.ErrEmptyQuestionnaire)
	})

	t.Run("AllDeletedIsAnError", func(t *testing.T) {
		fixtures := testingutil.NewFixtures()
		fixtures.AddQuestionnaire(7, 1)
		fixtures.AddSection(1, 7, false)
		fixtures.AddStep(10, 1, false)
		fixtures.AddQuestion(101, 10, true)

		resolver := businessflow.NewQuestionnaireStructureResolver(fixtures.QuestionnaireRepo, nil, nil)

		_, err := resolver.Resolve(context.Background(), 7)
		require.ErrorIs(t, err, businessflow.ErrEmptyQuestionnaire)
	})

	t.Run("WithoutCacheClientEveryResolveHitsStorage", func(t *testing.T) {
		fixtures := testingutil.NewFixtures()
		fixtures.AddQuestionnaire(7, 1)
		fixtures.SeedFlatQuestionnaire(7, 1, 101, 102)

		resolver := businessflow.NewQuestionnaireStructureResolver(fixtures.QuestionnaireRepo, nil, nil)

		first, err := resolver.Resolve(context.Background(), 7)
		require.NoError(t, err)
		readsAfterFirst := fixtures.QuestionnaireRepo.HierarchyReads

		second, err := resolver.Resolve(context.Background(), 7)
		require.NoError(t, err)

		assert.Equal(t, first, second)
		assert.Equal(t, readsAfterFirst*2, fixtures.QuestionnaireRepo.HierarchyReads)
	})

	t.Run("PropagatesStorageErrors", func(t *testing.T) {
		fixtures := testingutil.NewFixtures()
		fixtures.QuestionnaireRepo.SectionsErr = assert.AnError

		resolver := businessflow.NewQuestionnaireStructureResolver(fixtures.QuestionnaireRepo, nil, nil)

		_, err := resolver.Resolve(context.Background(), 7)
		require.ErrorIs(t, err, assert.AnError)
	})
}
