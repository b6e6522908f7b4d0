package businessflow

import (
	"context"
	"strings"
	"testing"

	"github.com/attestix/attestix/models"
	testingutil "github.com/attestix/attestix/testing"
	"github.com/attestix/attestix/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sagaInput(isPublic bool, contactID *uint, roleIDs, questionIDs []uint) interviewSagaInput {
	return interviewSagaInput{
		CompanyID:       1,
		CreatedBy:       9,
		ProgramID:       10,
		PhaseID:         3,
		QuestionnaireID: 7,
		InterviewType:   models.InterviewTypeOnsite,
		IsPublic:        isPublic,
		ContactID:       contactID,
		RoleIDs:         roleIDs,
		QuestionIDs:     questionIDs,
	}
}

func TestInterviewSagaCommitsGroupAggregate(t *testing.T) {
	repo := testingutil.NewFakeInterviewRepository()
	saga := newInterviewSaga(repo, sagaInput(false, nil, []uint{1, 2}, []uint{101, 102, 103}))

	result, err := saga.Execute(context.Background())
	require.NoError(t, err)
	require.NotNil(t, result.Interview)

	assert.False(t, result.RoleReduced)
	assert.Equal(t, []uint{1, 2}, result.EffectiveRoleIDs)
	assert.Equal(t, "onsite Interview - Group", result.Interview.Name)
	assert.Nil(t, result.Interview.ContactID)
	assert.Nil(t, result.Interview.AccessCode)
	assert.Equal(t, models.InterviewStatusPending, result.Interview.Status)
	require.NotNil(t, result.Interview.Enabled)
	assert.True(t, *result.Interview.Enabled)

	assert.Len(t, repo.Interviews, 1)
	assert.Len(t, repo.Roles, 2)
	assert.Len(t, repo.Responses, 3)
	// Group interviews never pre-populate response roles
	assert.Empty(t, repo.ResponseRoles)

	// Placeholders are blank: one per question, nothing answered yet
	for i, response := range repo.Responses {
		assert.Equal(t, result.Interview.ID, response.InterviewID)
		assert.Equal(t, []uint{101, 102, 103}[i], response.QuestionnaireQuestionID)
		assert.Nil(t, response.RatingScore)
		assert.Nil(t, response.Comments)
		assert.Nil(t, response.AnsweredAt)
		require.NotNil(t, response.IsApplicable)
		assert.True(t, *response.IsApplicable)
	}
}

func TestInterviewSagaCommitsPublicIndividualAggregate(t *testing.T) {
	repo := testingutil.NewFakeInterviewRepository()
	saga := newInterviewSaga(repo, sagaInput(true, utils.ToPtr(uint(42)), []uint{5}, []uint{101, 102}))

	result, err := saga.Execute(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "onsite Interview - Contact 42", result.Interview.Name)
	require.NotNil(t, result.Interview.ContactID)
	assert.Equal(t, uint(42), *result.Interview.ContactID)

	require.NotNil(t, result.Interview.AccessCode)
	code := *result.Interview.AccessCode
	assert.Len(t, code, utils.AccessCodeLength)
	for _, r := range code {
		assert.True(t, strings.ContainsRune(utils.AccessCodeAlphabet, r), "unexpected access code character %q", r)
	}

	// Single-role public interview pre-populates the answering role on every
	// placeholder
	require.Len(t, repo.ResponseRoles, 2)
	responseIDs := map[uint]bool{}
	for _, response := range repo.Responses {
		responseIDs[response.ID] = true
	}
	for _, responseRole := range repo.ResponseRoles {
		assert.Equal(t, uint(5), responseRole.RoleID)
		assert.Equal(t, result.Interview.ID, responseRole.InterviewID)
		assert.True(t, responseIDs[responseRole.InterviewResponseID])
	}
}

func TestInterviewSagaReducesRolesForPublicIndividual(t *testing.T) {
	repo := testingutil.NewFakeInterviewRepository()
	saga := newInterviewSaga(repo, sagaInput(true, utils.ToPtr(uint(42)), []uint{7, 8, 9}, []uint{101}))

	result, err := saga.Execute(context.Background())
	require.NoError(t, err)

	assert.True(t, result.RoleReduced)
	assert.Equal(t, []uint{7}, result.EffectiveRoleIDs)
	require.Len(t, repo.Roles, 1)
	assert.Equal(t, uint(7), repo.Roles[0].RoleID)
	// Reduction leaves a single effective role, so the conditional step runs
	assert.Len(t, repo.ResponseRoles, 1)
}

func TestInterviewSagaKeepsAllRolesForGroupInterview(t *testing.T) {
	repo := testingutil.NewFakeInterviewRepository()
	saga := newInterviewSaga(repo, sagaInput(false, nil, []uint{7, 8, 9}, []uint{101}))

	result, err := saga.Execute(context.Background())
	require.NoError(t, err)

	assert.False(t, result.RoleReduced)
	assert.Len(t, repo.Roles, 3)
}

func TestInterviewSagaCompensatesCompletedSteps(t *testing.T) {
	cases := []struct {
		name  string
		setup func(repo *testingutil.FakeInterviewRepository)
	}{
		{
			name:  "link_roles fails",
			setup: func(repo *testingutil.FakeInterviewRepository) { repo.FailRolesOnCall = 1 },
		},
		{
			name:  "create_responses fails",
			setup: func(repo *testingutil.FakeInterviewRepository) { repo.FailResponsesOnCall = 1 },
		},
		{
			name:  "link_response_roles fails",
			setup: func(repo *testingutil.FakeInterviewRepository) { repo.FailResponseRolesOnCall = 1 },
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			repo := testingutil.NewFakeInterviewRepository()
			tc.setup(repo)

			saga := newInterviewSaga(repo, sagaInput(true, utils.ToPtr(uint(42)), []uint{5}, []uint{101, 102}))
			_, err := saga.Execute(context.Background())
			require.ErrorIs(t, err, testingutil.ErrInjected)

			// Nothing of the aggregate survives
			assert.Empty(t, repo.Interviews)
			assert.Empty(t, repo.Roles)
			assert.Empty(t, repo.Responses)
			assert.Empty(t, repo.ResponseRoles)
		})
	}
}

func TestInterviewSagaHeaderFailureNeedsNoCompensation(t *testing.T) {
	repo := testingutil.NewFakeInterviewRepository()
	repo.FailSaveOnCall = 1

	saga := newInterviewSaga(repo, sagaInput(false, nil, []uint{1}, []uint{101}))
	_, err := saga.Execute(context.Background())
	require.ErrorIs(t, err, testingutil.ErrInjected)
	assert.Empty(t, repo.Interviews)
}

func TestInterviewSagaSurfacesStepErrorOverCompensationError(t *testing.T) {
	repo := testingutil.NewFakeInterviewRepository()
	repo.FailResponsesOnCall = 1
	repo.DeleteRolesErr = assert.AnError

	saga := newInterviewSaga(repo, sagaInput(false, nil, []uint{1}, []uint{101}))
	_, err := saga.Execute(context.Background())

	// The step failure wins; the secondary compensation failure is only logged
	require.ErrorIs(t, err, testingutil.ErrInjected)
	assert.NotErrorIs(t, err, assert.AnError)
	// The roles delete failed, so those rows remain
	assert.Len(t, repo.Roles, 1)
	assert.Empty(t, repo.Interviews)
}

func TestInterviewSagaCompensatesUnderCancelledContext(t *testing.T) {
	repo := testingutil.NewFakeInterviewRepository()
	repo.FailResponsesOnCall = 1

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	saga := newInterviewSaga(repo, sagaInput(false, nil, []uint{1}, []uint{101}))
	_, err := saga.Execute(ctx)
	require.Error(t, err)

	assert.Empty(t, repo.Interviews)
	assert.Empty(t, repo.Roles)
}

func TestInterviewSagaRejectsEmptyInput(t *testing.T) {
	repo := testingutil.NewFakeInterviewRepository()

	saga := newInterviewSaga(repo, sagaInput(false, nil, []uint{1}, nil))
	_, err := saga.Execute(context.Background())
	require.ErrorIs(t, err, ErrEmptyQuestionnaire)

	saga = newInterviewSaga(repo, sagaInput(false, nil, nil, []uint{101}))
	_, err = saga.Execute(context.Background())
	require.ErrorIs(t, err, ErrNoRolesSelected)

	assert.Zero(t, repo.SaveCalls)
}
