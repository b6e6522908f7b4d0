// Package testing provides in-memory repository doubles and fixtures for
// exercising the provisioning workflow without a database. Each fake supports
// call counting and per-call failure injection so rollback paths can be
// driven deterministically.
package testing

import (
	"context"
	"errors"
	"sync"

	"github.com/attestix/attestix/models"
	"github.com/attestix/attestix/utils"
)

// ErrInjected is the storage failure returned by fakes when a failure
// injection point fires
var ErrInjected = errors.New("injected storage failure")

// FakeProgramRepository is an in-memory ProgramRepository
type FakeProgramRepository struct {
	mu       sync.Mutex
	Programs map[uint]*models.Program
	Phases   []*models.ProgramPhase

	ByIDCalls int
	ByIDErr   error
}

func NewFakeProgramRepository() *FakeProgramRepository {
	return &FakeProgramRepository{Programs: make(map[uint]*models.Program)}
}

func (f *FakeProgramRepository) ByID(ctx context.Context, id uint) (*models.Program, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.ByIDCalls++
	if f.ByIDErr != nil {
		return nil, f.ByIDErr
	}
	return f.Programs[id], nil
}

func (f *FakeProgramRepository) Save(ctx context.Context, program *models.Program) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if program.ID == 0 {
		program.ID = uint(len(f.Programs) + 1)
	}
	f.Programs[program.ID] = program
	return nil
}

func (f *FakeProgramRepository) SaveBatch(ctx context.Context, programs []*models.Program) error {
	for _, program := range programs {
		if err := f.Save(ctx, program); err != nil {
			return err
		}
	}
	return nil
}

func (f *FakeProgramRepository) DeleteByID(ctx context.Context, id uint) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	delete(f.Programs, id)
	return nil
}

func (f *FakeProgramRepository) PhaseByID(ctx context.Context, programID, phaseID uint) (*models.ProgramPhase, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, phase := range f.Phases {
		if phase.ID == phaseID && phase.ProgramID == programID {
			return phase, nil
		}
	}
	return nil, nil
}

// FakeQuestionnaireRepository is an in-memory QuestionnaireRepository. The
// hierarchy reads mirror the real repository: soft-deleted rows are skipped
// and rows come back in ascending primary-key order, which is the order
// fixtures register them in.
type FakeQuestionnaireRepository struct {
	mu             sync.Mutex
	Questionnaires map[uint]*models.Questionnaire
	Sections       []*models.QuestionnaireSection
	Steps          []*models.QuestionnaireStep
	Questions      []*models.QuestionnaireQuestion

	HierarchyReads int
	SectionsErr    error
}

func NewFakeQuestionnaireRepository() *FakeQuestionnaireRepository {
	return &FakeQuestionnaireRepository{Questionnaires: make(map[uint]*models.Questionnaire)}
}

func (f *FakeQuestionnaireRepository) ByID(ctx context.Context, id uint) (*models.Questionnaire, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.Questionnaires[id], nil
}

func (f *FakeQuestionnaireRepository) Save(ctx context.Context, questionnaire *models.Questionnaire) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if questionnaire.ID == 0 {
		questionnaire.ID = uint(len(f.Questionnaires) + 1)
	}
	f.Questionnaires[questionnaire.ID] = questionnaire
	return nil
}

func (f *FakeQuestionnaireRepository) SaveBatch(ctx context.Context, questionnaires []*models.Questionnaire) error {
	for _, questionnaire := range questionnaires {
		if err := f.Save(ctx, questionnaire); err != nil {
			return err
		}
	}
	return nil
}

func (f *FakeQuestionnaireRepository) DeleteByID(ctx context.Context, id uint) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	delete(f.Questionnaires, id)
	return nil
}

func (f *FakeQuestionnaireRepository) SectionsByQuestionnaireID(ctx context.Context, questionnaireID uint) ([]*models.QuestionnaireSection, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.HierarchyReads++
	if f.SectionsErr != nil {
		return nil, f.SectionsErr
	}

	var sections []*models.QuestionnaireSection
	for _, section := range f.Sections {
		if section.QuestionnaireID == questionnaireID && !utils.IsTrue(section.IsDeleted) {
			sections = append(sections, section)
		}
	}
	return sections, nil
}

func (f *FakeQuestionnaireRepository) StepsBySectionID(ctx context.Context, sectionID uint) ([]*models.QuestionnaireStep, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.HierarchyReads++

	var steps []*models.QuestionnaireStep
	for _, step := range f.Steps {
		if step.SectionID == sectionID && !utils.IsTrue(step.IsDeleted) {
			steps = append(steps, step)
		}
	}
	return steps, nil
}

func (f *FakeQuestionnaireRepository) QuestionsByStepID(ctx context.Context, stepID uint) ([]*models.QuestionnaireQuestion, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.HierarchyReads++

	var questions []*models.QuestionnaireQuestion
	for _, question := range f.Questions {
		if question.StepID == stepID && !utils.IsTrue(question.IsDeleted) {
			questions = append(questions, question)
		}
	}
	return questions, nil
}

// FakeInterviewRepository is an in-memory InterviewRepository. FailXxxOnCall
// fields make the Nth call (1-based) of that operation return ErrInjected;
// zero disables the injection. DeleteXxxErr fields fail compensation deletes.
type FakeInterviewRepository struct {
	mu            sync.Mutex
	nextID        uint
	Interviews    map[uint]*models.Interview
	Roles         []*models.InterviewRole
	Responses     []*models.InterviewResponse
	ResponseRoles []*models.InterviewResponseRole

	SaveCalls              int
	SaveRolesCalls         int
	SaveResponsesCalls     int
	SaveResponseRolesCalls int

	FailSaveOnCall          int
	FailRolesOnCall         int
	FailResponsesOnCall     int
	FailResponseRolesOnCall int
	DeleteInterviewErr      error
	DeleteRolesErr          error
	DeleteResponsesErr      error
	DeleteResponseRolesErr  error
}

func NewFakeInterviewRepository() *FakeInterviewRepository {
	return &FakeInterviewRepository{Interviews: make(map[uint]*models.Interview)}
}

func (f *FakeInterviewRepository) allocID() uint {
	f.nextID++
	return f.nextID
}

func (f *FakeInterviewRepository) ByID(ctx context.Context, id uint) (*models.Interview, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.Interviews[id], nil
}

func (f *FakeInterviewRepository) Save(ctx context.Context, interview *models.Interview) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.SaveCalls++
	if f.FailSaveOnCall > 0 && f.SaveCalls == f.FailSaveOnCall {
		return ErrInjected
	}

	if interview.ID == 0 {
		interview.ID = f.allocID()
	}
	f.Interviews[interview.ID] = interview
	return nil
}

func (f *FakeInterviewRepository) SaveBatch(ctx context.Context, interviews []*models.Interview) error {
	for _, interview := range interviews {
		if err := f.Save(ctx, interview); err != nil {
			return err
		}
	}
	return nil
}

func (f *FakeInterviewRepository) DeleteByID(ctx context.Context, id uint) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.DeleteInterviewErr != nil {
		return f.DeleteInterviewErr
	}
	delete(f.Interviews, id)
	return nil
}

func (f *FakeInterviewRepository) SaveRoles(ctx context.Context, roles []*models.InterviewRole) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.SaveRolesCalls++
	if f.FailRolesOnCall > 0 && f.SaveRolesCalls == f.FailRolesOnCall {
		return ErrInjected
	}

	for _, role := range roles {
		role.ID = f.allocID()
		f.Roles = append(f.Roles, role)
	}
	return nil
}

func (f *FakeInterviewRepository) SaveResponses(ctx context.Context, responses []*models.InterviewResponse) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.SaveResponsesCalls++
	if f.FailResponsesOnCall > 0 && f.SaveResponsesCalls == f.FailResponsesOnCall {
		return ErrInjected
	}

	for _, response := range responses {
		response.ID = f.allocID()
		f.Responses = append(f.Responses, response)
	}
	return nil
}

func (f *FakeInterviewRepository) SaveResponseRoles(ctx context.Context, responseRoles []*models.InterviewResponseRole) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.SaveResponseRolesCalls++
	if f.FailResponseRolesOnCall > 0 && f.SaveResponseRolesCalls == f.FailResponseRolesOnCall {
		return ErrInjected
	}

	for _, responseRole := range responseRoles {
		responseRole.ID = f.allocID()
		f.ResponseRoles = append(f.ResponseRoles, responseRole)
	}
	return nil
}

func (f *FakeInterviewRepository) DeleteRolesByInterviewID(ctx context.Context, interviewID uint) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.DeleteRolesErr != nil {
		return f.DeleteRolesErr
	}

	var kept []*models.InterviewRole
	for _, role := range f.Roles {
		if role.InterviewID != interviewID {
			kept = append(kept, role)
		}
	}
	f.Roles = kept
	return nil
}

func (f *FakeInterviewRepository) DeleteResponsesByInterviewID(ctx context.Context, interviewID uint) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.DeleteResponsesErr != nil {
		return f.DeleteResponsesErr
	}

	var kept []*models.InterviewResponse
	for _, response := range f.Responses {
		if response.InterviewID != interviewID {
			kept = append(kept, response)
		}
	}
	f.Responses = kept
	return nil
}

func (f *FakeInterviewRepository) DeleteResponseRolesByInterviewID(ctx context.Context, interviewID uint) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.DeleteResponseRolesErr != nil {
		return f.DeleteResponseRolesErr
	}

	var kept []*models.InterviewResponseRole
	for _, responseRole := range f.ResponseRoles {
		if responseRole.InterviewID != interviewID {
			kept = append(kept, responseRole)
		}
	}
	f.ResponseRoles = kept
	return nil
}

func (f *FakeInterviewRepository) RolesByInterviewID(ctx context.Context, interviewID uint) ([]*models.InterviewRole, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var roles []*models.InterviewRole
	for _, role := range f.Roles {
		if role.InterviewID == interviewID {
			roles = append(roles, role)
		}
	}
	return roles, nil
}

func (f *FakeInterviewRepository) ResponsesByInterviewID(ctx context.Context, interviewID uint) ([]*models.InterviewResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var responses []*models.InterviewResponse
	for _, response := range f.Responses {
		if response.InterviewID == interviewID {
			responses = append(responses, response)
		}
	}
	return responses, nil
}

func (f *FakeInterviewRepository) ResponseRolesByInterviewID(ctx context.Context, interviewID uint) ([]*models.InterviewResponseRole, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var responseRoles []*models.InterviewResponseRole
	for _, responseRole := range f.ResponseRoles {
		if responseRole.InterviewID == interviewID {
			responseRoles = append(responseRoles, responseRole)
		}
	}
	return responseRoles, nil
}

// FakeContactRepository is an in-memory ContactRepository
type FakeContactRepository struct {
	mu       sync.Mutex
	Contacts map[uint]*models.Contact
}

func NewFakeContactRepository() *FakeContactRepository {
	return &FakeContactRepository{Contacts: make(map[uint]*models.Contact)}
}

func (f *FakeContactRepository) ByID(ctx context.Context, id uint) (*models.Contact, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.Contacts[id], nil
}

func (f *FakeContactRepository) Save(ctx context.Context, contact *models.Contact) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if contact.ID == 0 {
		contact.ID = uint(len(f.Contacts) + 1)
	}
	f.Contacts[contact.ID] = contact
	return nil
}

func (f *FakeContactRepository) SaveBatch(ctx context.Context, contacts []*models.Contact) error {
	for _, contact := range contacts {
		if err := f.Save(ctx, contact); err != nil {
			return err
		}
	}
	return nil
}

func (f *FakeContactRepository) DeleteByID(ctx context.Context, id uint) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	delete(f.Contacts, id)
	return nil
}

// FakeAuditLogRepository records audit rows in memory
type FakeAuditLogRepository struct {
	mu   sync.Mutex
	Logs []*models.AuditLog

	SaveErr error
}

func NewFakeAuditLogRepository() *FakeAuditLogRepository {
	return &FakeAuditLogRepository{}
}

func (f *FakeAuditLogRepository) ByID(ctx context.Context, id uint) (*models.AuditLog, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, auditLog := range f.Logs {
		if auditLog.ID == id {
			return auditLog, nil
		}
	}
	return nil, nil
}

func (f *FakeAuditLogRepository) Save(ctx context.Context, auditLog *models.AuditLog) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.SaveErr != nil {
		return f.SaveErr
	}

	if auditLog.ID == 0 {
		auditLog.ID = uint(len(f.Logs) + 1)
	}
	f.Logs = append(f.Logs, auditLog)
	return nil
}

func (f *FakeAuditLogRepository) SaveBatch(ctx context.Context, auditLogs []*models.AuditLog) error {
	for _, auditLog := range auditLogs {
		if err := f.Save(ctx, auditLog); err != nil {
			return err
		}
	}
	return nil
}

func (f *FakeAuditLogRepository) DeleteByID(ctx context.Context, id uint) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	var kept []*models.AuditLog
	for _, auditLog := range f.Logs {
		if auditLog.ID != id {
			kept = append(kept, auditLog)
		}
	}
	f.Logs = kept
	return nil
}

func (f *FakeAuditLogRepository) ListByCompany(ctx context.Context, companyID uint, limit, offset int) ([]*models.AuditLog, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var matched []*models.AuditLog
	for _, auditLog := range f.Logs {
		if auditLog.CompanyID != nil && *auditLog.CompanyID == companyID {
			matched = append(matched, auditLog)
		}
	}
	return paginate(matched, limit, offset), nil
}

func (f *FakeAuditLogRepository) ListByAction(ctx context.Context, action string, limit, offset int) ([]*models.AuditLog, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var matched []*models.AuditLog
	for _, auditLog := range f.Logs {
		if auditLog.Action == action {
			matched = append(matched, auditLog)
		}
	}
	return paginate(matched, limit, offset), nil
}

func paginate(logs []*models.AuditLog, limit, offset int) []*models.AuditLog {
	if offset >= len(logs) {
		return nil
	}
	logs = logs[offset:]
	if limit > 0 && limit < len(logs) {
		logs = logs[:limit]
	}
	return logs
}
