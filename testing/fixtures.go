package testing

import (
	"github.com/attestix/attestix/models"
	"github.com/attestix/attestix/utils"
)

// Fixtures bundles the fakes one provisioning scenario needs and offers
// builders for the entities the workflow reads
type Fixtures struct {
	ProgramRepo       *FakeProgramRepository
	QuestionnaireRepo *FakeQuestionnaireRepository
	InterviewRepo     *FakeInterviewRepository
	ContactRepo       *FakeContactRepository
	AuditRepo         *FakeAuditLogRepository
}

// NewFixtures creates an empty fixture set
func NewFixtures() *Fixtures {
	return &Fixtures{
		ProgramRepo:       NewFakeProgramRepository(),
		QuestionnaireRepo: NewFakeQuestionnaireRepository(),
		InterviewRepo:     NewFakeInterviewRepository(),
		ContactRepo:       NewFakeContactRepository(),
		AuditRepo:         NewFakeAuditLogRepository(),
	}
}

// AddProgram registers a program whose onsite and presite questionnaires are
// both set to questionnaireID. Pass 0 to leave both unset.
func (f *Fixtures) AddProgram(id, companyID, questionnaireID uint) *models.Program {
	program := &models.Program{
		ID:        id,
		CompanyID: companyID,
		Name:      "Test Program",
		IsDeleted: utils.ToPtr(false),
		CreatedBy: 1,
		CreatedAt: utils.UTCNow(),
	}
	if questionnaireID != 0 {
		program.OnsiteQuestionnaireID = utils.ToPtr(questionnaireID)
		program.PresiteQuestionnaireID = utils.ToPtr(questionnaireID)
	}
	f.ProgramRepo.Programs[id] = program
	return program
}

// AddPhase registers a phase under a program
func (f *Fixtures) AddPhase(id, programID uint) *models.ProgramPhase {
	phase := &models.ProgramPhase{
		ID:        id,
		ProgramID: programID,
		Name:      "Test Phase",
		IsDeleted: utils.ToPtr(false),
		CreatedAt: utils.UTCNow(),
	}
	f.ProgramRepo.Phases = append(f.ProgramRepo.Phases, phase)
	return phase
}

// AddQuestionnaire registers a questionnaire root
func (f *Fixtures) AddQuestionnaire(id, companyID uint) *models.Questionnaire {
	questionnaire := &models.Questionnaire{
		ID:        id,
		CompanyID: companyID,
		Name:      "Test Questionnaire",
		IsDeleted: utils.ToPtr(false),
		CreatedBy: 1,
		CreatedAt: utils.UTCNow(),
	}
	f.QuestionnaireRepo.Questionnaires[id] = questionnaire
	return questionnaire
}

// AddSection registers a section under a questionnaire. Register fixture rows
// in ascending id order; the fakes return them in registration order.
func (f *Fixtures) AddSection(id, questionnaireID uint, deleted bool) *models.QuestionnaireSection {
	section := &models.QuestionnaireSection{
		ID:              id,
		QuestionnaireID: questionnaireID,
		Title:           "Test Section",
		IsDeleted:       utils.ToPtr(deleted),
		CreatedAt:       utils.UTCNow(),
	}
	f.QuestionnaireRepo.Sections = append(f.QuestionnaireRepo.Sections, section)
	return section
}

// AddStep registers a step under a section
func (f *Fixtures) AddStep(id, sectionID uint, deleted bool) *models.QuestionnaireStep {
	step := &models.QuestionnaireStep{
		ID:        id,
		SectionID: sectionID,
		Title:     "Test Step",
		IsDeleted: utils.ToPtr(deleted),
		CreatedAt: utils.UTCNow(),
	}
	f.QuestionnaireRepo.Steps = append(f.QuestionnaireRepo.Steps, step)
	return step
}

// AddQuestion registers a question under a step
func (f *Fixtures) AddQuestion(id, stepID uint, deleted bool) *models.QuestionnaireQuestion {
	question := &models.QuestionnaireQuestion{
		ID:        id,
		StepID:    stepID,
		Text:      "Test question?",
		IsDeleted: utils.ToPtr(deleted),
		CreatedAt: utils.UTCNow(),
	}
	f.QuestionnaireRepo.Questions = append(f.QuestionnaireRepo.Questions, question)
	return question
}

// AddContact registers a contact for a company
func (f *Fixtures) AddContact(id, companyID uint) *models.Contact {
	contact := &models.Contact{
		ID:        id,
		CompanyID: companyID,
		FirstName: "Jane",
		LastName:  "Auditor",
		Email:     "jane.auditor@example.com",
		IsDeleted: utils.ToPtr(false),
		CreatedAt: utils.UTCNow(),
	}
	f.ContactRepo.Contacts[id] = contact
	return contact
}

// SeedFlatQuestionnaire builds a questionnaire with one section, one step and
// the given question ids, in order
func (f *Fixtures) SeedFlatQuestionnaire(questionnaireID, companyID uint, questionIDs ...uint) {
	f.AddQuestionnaire(questionnaireID, companyID)
	sectionID := questionnaireID*100 + 1
	stepID := questionnaireID*100 + 2
	f.AddSection(sectionID, questionnaireID, false)
	f.AddStep(stepID, sectionID, false)
	for _, questionID := range questionIDs {
		f.AddQuestion(questionID, stepID, false)
	}
}
