package businessflow_test

import (
	"context"
	"testing"

	"github.com/attestix/attestix/app/dto"
	businessflow "github.com/attestix/attestix/business_flow"
	"github.com/attestix/attestix/models"
	testingutil "github.com/attestix/attestix/testing"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newProvisioningFlow(fixtures *testingutil.Fixtures) businessflow.InterviewProvisioningFlow {
	return businessflow.NewInterviewProvisioningFlow(
		fixtures.ProgramRepo,
		fixtures.QuestionnaireRepo,
		fixtures.InterviewRepo,
		fixtures.AuditRepo,
		nil,
		nil,
	)
}

func provisionRequest(isPublic bool, roleIDs, contactIDs []uint) *dto.ProvisionInterviewsRequest {
	return &dto.ProvisionInterviewsRequest{
		ProgramID:     10,
		PhaseID:       3,
		InterviewType: "onsite",
		IsPublic:      isPublic,
		RoleIDs:       roleIDs,
		ContactIDs:    contactIDs,
		CompanyID:     1,
		CreatedBy:     9,
	}
}

// seedProvisioningScenario sets up program 10 (company 1) with phase 3 and an
// onsite questionnaire 7 holding questions 101, 102, 103
func seedProvisioningScenario(fixtures *testingutil.Fixtures) {
	fixtures.AddProgram(10, 1, 7)
	fixtures.AddPhase(3, 10)
	fixtures.SeedFlatQuestionnaire(7, 1, 101, 102, 103)
}

func TestProvisionInterviewsValidation(t *testing.T) {
	metadata := businessflow.NewClientMetadata("127.0.0.1", "test-agent")

	t.Run("NoRolesSelected", func(t *testing.T) {
		fixtures := testingutil.NewFixtures()
		seedProvisioningScenario(fixtures)
		flow := newProvisioningFlow(fixtures)

		_, err := flow.ProvisionInterviews(context.Background(), provisionRequest(false, nil, nil), metadata)
		require.Error(t, err)
		assert.True(t, businessflow.IsNoRolesSelected(err))

		// Fail-fast: no storage touched before the first write
		assert.Zero(t, fixtures.ProgramRepo.ByIDCalls)
		assert.Zero(t, fixtures.QuestionnaireRepo.HierarchyReads)
		assert.Zero(t, fixtures.InterviewRepo.SaveCalls)
	})

	t.Run("PublicWithoutContacts", func(t *testing.T) {
		fixtures := testingutil.NewFixtures()
		seedProvisioningScenario(fixtures)
		flow := newProvisioningFlow(fixtures)

		_, err := flow.ProvisionInterviews(context.Background(), provisionRequest(true, []uint{1}, nil), metadata)
		require.Error(t, err)
		assert.True(t, businessflow.IsNoContactsForPublicInterview(err))
		assert.Zero(t, fixtures.ProgramRepo.ByIDCalls)
	})

	t.Run("InvalidInterviewType", func(t *testing.T) {
		fixtures := testingutil.NewFixtures()
		seedProvisioningScenario(fixtures)
		flow := newProvisioningFlow(fixtures)

		req := provisionRequest(false, []uint{1}, nil)
		req.InterviewType = "remote"
		_, err := flow.ProvisionInterviews(context.Background(), req, metadata)
		require.Error(t, err)
		assert.True(t, businessflow.IsInvalidInterviewType(err))
	})

	t.Run("ProgramNotFound", func(t *testing.T) {
		fixtures := testingutil.NewFixtures()
		flow := newProvisioningFlow(fixtures)

		_, err := flow.ProvisionInterviews(context.Background(), provisionRequest(false, []uint{1}, nil), metadata)
		require.Error(t, err)
		assert.True(t, businessflow.IsProgramNotFound(err))
	})

	t.Run("ProgramOfAnotherCompany", func(t *testing.T) {
		fixtures := testingutil.NewFixtures()
		fixtures.AddProgram(10, 2, 7)
		fixtures.AddPhase(3, 10)
		flow := newProvisioningFlow(fixtures)

		_, err := flow.ProvisionInterviews(context.Background(), provisionRequest(false, []uint{1}, nil), metadata)
		require.Error(t, err)
		assert.True(t, businessflow.IsProgramNotFound(err))
	})

	t.Run("PhaseNotFound", func(t *testing.T) {
		fixtures := testingutil.NewFixtures()
		fixtures.AddProgram(10, 1, 7)
		fixtures.AddPhase(4, 10)
		flow := newProvisioningFlow(fixtures)

		_, err := flow.ProvisionInterviews(context.Background(), provisionRequest(false, []uint{1}, nil), metadata)
		require.Error(t, err)
		assert.True(t, businessflow.IsPhaseNotFound(err))
	})

	t.Run("PhaseOfAnotherProgram", func(t *testing.T) {
		fixtures := testingutil.NewFixtures()
		fixtures.AddProgram(10, 1, 7)
		fixtures.AddProgram(11, 1, 7)
		fixtures.AddPhase(3, 11)
		flow := newProvisioningFlow(fixtures)

		_, err := flow.ProvisionInterviews(context.Background(), provisionRequest(false, []uint{1}, nil), metadata)
		require.Error(t, err)
		assert.True(t, businessflow.IsPhaseNotFound(err))
	})

	t.Run("MissingQuestionnaireConfig", func(t *testing.T) {
		fixtures := testingutil.NewFixtures()
		fixtures.AddProgram(10, 1, 0)
		fixtures.AddPhase(3, 10)
		flow := newProvisioningFlow(fixtures)

		_, err := flow.ProvisionInterviews(context.Background(), provisionRequest(false, []uint{1}, nil), metadata)
		require.Error(t, err)
		assert.True(t, businessflow.IsMissingQuestionnaireConfig(err))
	})

	t.Run("EmptyQuestionnaire", func(t *testing.T) {
		fixtures := testingutil.NewFixtures()
		fixtures.AddProgram(10, 1, 7)
		fixtures.AddPhase(3, 10)
		fixtures.AddQuestionnaire(7, 1)

		flow := newProvisioningFlow(fixtures)

		_, err := flow.ProvisionInterviews(context.Background(), provisionRequest(false, []uint{1}, nil), metadata)
		require.Error(t, err)
		assert.True(t, businessflow.IsEmptyQuestionnaire(err))
		assert.Zero(t, fixtures.InterviewRepo.SaveCalls)
	})

	// Every validation failure leaves an audit trail
	t.Run("FailureIsAudited", func(t *testing.T) {
		fixtures := testingutil.NewFixtures()
		flow := newProvisioningFlow(fixtures)

		_, err := flow.ProvisionInterviews(context.Background(), provisionRequest(false, []uint{1}, nil), metadata)
		require.Error(t, err)

		failed, err := fixtures.AuditRepo.ListByAction(context.Background(), models.AuditActionInterviewProvisioningFailed, 10, 0)
		require.NoError(t, err)
		require.Len(t, failed, 1)
		assert.True(t, failed[0].IsFailed())
	})
}

func TestProvisionInterviewsGroup(t *testing.T) {
	fixtures := testingutil.NewFixtures()
	seedProvisioningScenario(fixtures)
	flow := newProvisioningFlow(fixtures)
	metadata := businessflow.NewClientMetadata("127.0.0.1", "test-agent")

	resp, err := flow.ProvisionInterviews(context.Background(), provisionRequest(false, []uint{1, 2}, nil), metadata)
	require.NoError(t, err)

	assert.Equal(t, 1, resp.InterviewsCreated)
	assert.False(t, resp.RoleReductionApplied)
	require.Len(t, resp.Interviews, 1)
	assert.Equal(t, "onsite Interview - Group", resp.Interviews[0].Name)
	assert.Empty(t, resp.Interviews[0].AccessCode)

	require.Len(t, fixtures.InterviewRepo.Interviews, 1)
	assert.Len(t, fixtures.InterviewRepo.Roles, 2)
	assert.Len(t, fixtures.InterviewRepo.Responses, 3)
	assert.Empty(t, fixtures.InterviewRepo.ResponseRoles)

	// Responses follow the questionnaire's flattening order
	var questionIDs []uint
	for _, response := range fixtures.InterviewRepo.Responses {
		questionIDs = append(questionIDs, response.QuestionnaireQuestionID)
	}
	assert.Equal(t, []uint{101, 102, 103}, questionIDs)

	completed, err := fixtures.AuditRepo.ListByAction(context.Background(), models.AuditActionInterviewProvisioningCompleted, 10, 0)
	require.NoError(t, err)
	assert.Len(t, completed, 1)
}

func TestProvisionInterviewsPublicBatch(t *testing.T) {
	fixtures := testingutil.NewFixtures()
	seedProvisioningScenario(fixtures)
	flow := newProvisioningFlow(fixtures)
	metadata := businessflow.NewClientMetadata("127.0.0.1", "test-agent")

	resp, err := flow.ProvisionInterviews(context.Background(), provisionRequest(true, []uint{5}, []uint{21, 22, 23}), metadata)
	require.NoError(t, err)

	assert.Equal(t, 3, resp.InterviewsCreated)
	assert.False(t, resp.RoleReductionApplied)
	require.Len(t, resp.Interviews, 3)

	// One individual interview per contact, each with its own access code
	codes := map[string]bool{}
	for i, interview := range resp.Interviews {
		require.NotNil(t, interview.ContactID)
		assert.Equal(t, []uint{21, 22, 23}[i], *interview.ContactID)
		assert.True(t, interview.IsPublic)
		require.NotEmpty(t, interview.AccessCode)
		codes[interview.AccessCode] = true
	}
	assert.Len(t, codes, 3)

	// Single role, so every placeholder carries its answering role
	assert.Len(t, fixtures.InterviewRepo.Responses, 9)
	assert.Len(t, fixtures.InterviewRepo.ResponseRoles, 9)
}

func TestProvisionInterviewsBatchAbortsAndKeepsPriorSuccesses(t *testing.T) {
	fixtures := testingutil.NewFixtures()
	seedProvisioningScenario(fixtures)
	// First contact's role link succeeds, second contact's fails
	fixtures.InterviewRepo.FailRolesOnCall = 2
	flow := newProvisioningFlow(fixtures)
	metadata := businessflow.NewClientMetadata("127.0.0.1", "test-agent")

	_, err := flow.ProvisionInterviews(context.Background(), provisionRequest(true, []uint{5}, []uint{21, 22, 23}), metadata)
	require.Error(t, err)

	batchErr, ok := businessflow.AsBatchMemberError(err)
	require.True(t, ok)
	assert.Equal(t, uint(22), batchErr.ContactID)
	assert.Equal(t, 1, batchErr.InterviewsCreated)

	// The first contact's aggregate is committed and stays; the failed one is
	// fully compensated; the third was never attempted
	require.Len(t, fixtures.InterviewRepo.Interviews, 1)
	for _, interview := range fixtures.InterviewRepo.Interviews {
		require.NotNil(t, interview.ContactID)
		assert.Equal(t, uint(21), *interview.ContactID)
	}
	assert.Len(t, fixtures.InterviewRepo.Roles, 1)
	assert.Len(t, fixtures.InterviewRepo.Responses, 3)
}

func TestProvisionInterviewsAuditsCompensatedAggregates(t *testing.T) {
	metadata := businessflow.NewClientMetadata("127.0.0.1", "test-agent")

	t.Run("MidAggregateFailureWritesCompensationRow", func(t *testing.T) {
		fixtures := testingutil.NewFixtures()
		seedProvisioningScenario(fixtures)
		fixtures.InterviewRepo.FailResponsesOnCall = 1
		flow := newProvisioningFlow(fixtures)

		_, err := flow.ProvisionInterviews(context.Background(), provisionRequest(false, []uint{1}, nil), metadata)
		require.Error(t, err)

		compensated, err := fixtures.AuditRepo.ListByAction(context.Background(), models.AuditActionInterviewAggregateCompensated, 10, 0)
		require.NoError(t, err)
		require.Len(t, compensated, 1)
		assert.True(t, compensated[0].IsFailed())
		require.NotNil(t, compensated[0].Description)
		assert.Contains(t, *compensated[0].Description, "create_responses")

		// The attempt-level failure row is written alongside it
		failed, err := fixtures.AuditRepo.ListByAction(context.Background(), models.AuditActionInterviewProvisioningFailed, 10, 0)
		require.NoError(t, err)
		assert.Len(t, failed, 1)
	})

	t.Run("HeaderFailureWritesNoCompensationRow", func(t *testing.T) {
		fixtures := testingutil.NewFixtures()
		seedProvisioningScenario(fixtures)
		fixtures.InterviewRepo.FailSaveOnCall = 1
		flow := newProvisioningFlow(fixtures)

		_, err := flow.ProvisionInterviews(context.Background(), provisionRequest(false, []uint{1}, nil), metadata)
		require.Error(t, err)

		compensated, err := fixtures.AuditRepo.ListByAction(context.Background(), models.AuditActionInterviewAggregateCompensated, 10, 0)
		require.NoError(t, err)
		assert.Empty(t, compensated)
	})

	t.Run("OneRowPerCompensatedBatchMember", func(t *testing.T) {
		fixtures := testingutil.NewFixtures()
		seedProvisioningScenario(fixtures)
		// Second contact's role link fails; only its aggregate is unwound
		fixtures.InterviewRepo.FailRolesOnCall = 2
		flow := newProvisioningFlow(fixtures)

		_, err := flow.ProvisionInterviews(context.Background(), provisionRequest(true, []uint{5}, []uint{21, 22, 23}), metadata)
		require.Error(t, err)

		compensated, err := fixtures.AuditRepo.ListByAction(context.Background(), models.AuditActionInterviewAggregateCompensated, 10, 0)
		require.NoError(t, err)
		require.Len(t, compensated, 1)
		require.NotNil(t, compensated[0].Description)
		assert.Contains(t, *compensated[0].Description, "link_roles")
	})
}

func TestProvisionInterviewsAuditsStart(t *testing.T) {
	metadata := businessflow.NewClientMetadata("127.0.0.1", "test-agent")

	fixtures := testingutil.NewFixtures()
	seedProvisioningScenario(fixtures)
	flow := newProvisioningFlow(fixtures)

	_, err := flow.ProvisionInterviews(context.Background(), provisionRequest(false, []uint{1}, nil), metadata)
	require.NoError(t, err)

	started, err := fixtures.AuditRepo.ListByAction(context.Background(), models.AuditActionInterviewProvisioningStarted, 10, 0)
	require.NoError(t, err)
	require.Len(t, started, 1)
	assert.False(t, started[0].IsFailed())

	// The start row is written before validation, so failed attempts get one too
	_, err = flow.ProvisionInterviews(context.Background(), provisionRequest(false, nil, nil), metadata)
	require.Error(t, err)

	started, err = fixtures.AuditRepo.ListByAction(context.Background(), models.AuditActionInterviewProvisioningStarted, 10, 0)
	require.NoError(t, err)
	assert.Len(t, started, 2)
}

func TestProvisionInterviewsAppliesRoleReduction(t *testing.T) {
	fixtures := testingutil.NewFixtures()
	seedProvisioningScenario(fixtures)
	flow := newProvisioningFlow(fixtures)
	metadata := businessflow.NewClientMetadata("127.0.0.1", "test-agent")

	resp, err := flow.ProvisionInterviews(context.Background(), provisionRequest(true, []uint{5, 6}, []uint{21}), metadata)
	require.NoError(t, err)

	assert.True(t, resp.RoleReductionApplied)
	require.Len(t, fixtures.InterviewRepo.Roles, 1)
	assert.Equal(t, uint(5), fixtures.InterviewRepo.Roles[0].RoleID)

	reductions, err := fixtures.AuditRepo.ListByAction(context.Background(), models.AuditActionRoleReductionApplied, 10, 0)
	require.NoError(t, err)
	require.Len(t, reductions, 1)

	// The audit row keeps the role selection as submitted
	require.Len(t, reductions[0].RoleIDs, 2)
	assert.Equal(t, int64(5), reductions[0].RoleIDs[0])
	assert.Equal(t, int64(6), reductions[0].RoleIDs[1])
}

func TestProvisionInterviewsPresiteUsesPresiteQuestionnaire(t *testing.T) {
	fixtures := testingutil.NewFixtures()
	program := fixtures.AddProgram(10, 1, 0)
	presiteID := uint(8)
	program.PresiteQuestionnaireID = &presiteID
	fixtures.AddPhase(3, 10)
	fixtures.SeedFlatQuestionnaire(8, 1, 201, 202)
	flow := newProvisioningFlow(fixtures)
	metadata := businessflow.NewClientMetadata("127.0.0.1", "test-agent")

	req := provisionRequest(false, []uint{1}, nil)
	req.InterviewType = "presite"

	resp, err := flow.ProvisionInterviews(context.Background(), req, metadata)
	require.NoError(t, err)
	assert.Equal(t, 1, resp.InterviewsCreated)

	for _, interview := range fixtures.InterviewRepo.Interviews {
		assert.Equal(t, uint(8), interview.QuestionnaireID)
		assert.Equal(t, models.InterviewTypePresite, interview.InterviewType)
	}
	assert.Len(t, fixtures.InterviewRepo.Responses, 2)
}

func TestProvisionInterviewsSurvivesAuditFailures(t *testing.T) {
	fixtures := testingutil.NewFixtures()
	seedProvisioningScenario(fixtures)
	fixtures.AuditRepo.SaveErr = assert.AnError
	flow := newProvisioningFlow(fixtures)
	metadata := businessflow.NewClientMetadata("127.0.0.1", "test-agent")

	resp, err := flow.ProvisionInterviews(context.Background(), provisionRequest(false, []uint{1}, nil), metadata)
	require.NoError(t, err)
	assert.Equal(t, 1, resp.InterviewsCreated)
}
