package services

import (
	"context"
	"testing"

	businessflow "github.com/attestix/attestix/business_flow"
	testingutil "github.com/attestix/attestix/testing"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingEmailProvider struct {
	emails   []string
	subjects []string
	bodies   []string
}

func (p *recordingEmailProvider) SendEmail(email, subject, message string) error {
	p.emails = append(p.emails, email)
	p.subjects = append(p.subjects, subject)
	p.bodies = append(p.bodies, message)
	return nil
}

func TestSendInterviewInvitation(t *testing.T) {
	fixture := testingutil.NewFixtures()
	fixture.AddContact(42, 1)

	provider := &recordingEmailProvider{}
	svc := NewNotificationService(provider, fixture.ContactRepo)

	err := svc.SendInterviewInvitation(context.Background(), 42, "onsite Interview - Contact 42", "abc123def456ghi789jkl012")
	require.NoError(t, err)

	require.Len(t, provider.emails, 1)
	assert.Equal(t, "jane.auditor@example.com", provider.emails[0])
	assert.Contains(t, provider.subjects[0], "onsite Interview - Contact 42")
	assert.Contains(t, provider.bodies[0], "abc123def456ghi789jkl012")
	assert.Contains(t, provider.bodies[0], "Jane Auditor")
}

func TestSendInterviewInvitationUnknownContact(t *testing.T) {
	fixture := testingutil.NewFixtures()
	provider := &recordingEmailProvider{}
	svc := NewNotificationService(provider, fixture.ContactRepo)

	err := svc.SendInterviewInvitation(context.Background(), 99, "Interview", "code")
	require.Error(t, err)
	assert.True(t, businessflow.IsContactNotFound(err))
	assert.Empty(t, provider.emails)
}

func TestSendEmailValidation(t *testing.T) {
	provider := &recordingEmailProvider{}
	svc := NewNotificationService(provider, nil)

	require.Error(t, svc.SendEmail("not-an-email", "subject", "body"))
	require.Error(t, svc.SendEmail("", "subject", "body"))
	require.NoError(t, svc.SendEmail("a@b.com", "subject", "body"))
}
