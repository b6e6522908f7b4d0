package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInterviewTypeValid(t *testing.T) {
	assert.True(t, InterviewTypeOnsite.Valid())
	assert.True(t, InterviewTypePresite.Valid())
	assert.False(t, InterviewType("remote").Valid())
	assert.False(t, InterviewType("").Valid())
}

func TestInterviewTypeScanValue(t *testing.T) {
	var it InterviewType
	require.NoError(t, it.Scan("presite"))
	assert.Equal(t, InterviewTypePresite, it)

	require.NoError(t, it.Scan([]byte("onsite")))
	assert.Equal(t, InterviewTypeOnsite, it)

	require.NoError(t, it.Scan(nil))
	assert.Equal(t, InterviewType(""), it)

	require.Error(t, it.Scan(42))

	v, err := InterviewTypeOnsite.Value()
	require.NoError(t, err)
	assert.Equal(t, "onsite", v)

	_, err = InterviewType("remote").Value()
	require.Error(t, err)
}

func TestInterviewStatusScanValue(t *testing.T) {
	var s InterviewStatus
	require.NoError(t, s.Scan("in-progress"))
	assert.Equal(t, InterviewStatusInProgress, s)

	v, err := InterviewStatusPending.Value()
	require.NoError(t, err)
	assert.Equal(t, "pending", v)

	_, err = InterviewStatus("archived").Value()
	require.Error(t, err)
}

func TestProgramQuestionnaireIDForType(t *testing.T) {
	onsite := uint(7)
	presite := uint(8)
	program := &Program{OnsiteQuestionnaireID: &onsite, PresiteQuestionnaireID: &presite}

	require.NotNil(t, program.QuestionnaireIDForType(InterviewTypeOnsite))
	assert.Equal(t, onsite, *program.QuestionnaireIDForType(InterviewTypeOnsite))
	require.NotNil(t, program.QuestionnaireIDForType(InterviewTypePresite))
	assert.Equal(t, presite, *program.QuestionnaireIDForType(InterviewTypePresite))

	empty := &Program{}
	assert.Nil(t, empty.QuestionnaireIDForType(InterviewTypeOnsite))
	assert.Nil(t, empty.QuestionnaireIDForType(InterviewTypePresite))
}

func TestAuditLogIsFailed(t *testing.T) {
	success := true
	failed := false

	assert.False(t, (&AuditLog{Success: &success}).IsFailed())
	assert.False(t, (&AuditLog{}).IsFailed())
	assert.True(t, (&AuditLog{Success: &failed}).IsFailed())
}
