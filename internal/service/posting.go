package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/dangerclosesec/jobdesk/internal/audit"
	"github.com/dangerclosesec/jobdesk/internal/domain"
	"github.com/dangerclosesec/jobdesk/internal/form"
	"github.com/dangerclosesec/jobdesk/internal/model"
	"github.com/dangerclosesec/jobdesk/internal/review"
	"github.com/dangerclosesec/jobdesk/internal/session"
	"github.com/dangerclosesec/jobdesk/internal/validation"
	"github.com/google/uuid"
)

const (
	draftSavedMessage    = "Draft saved."
	publishedLiveMessage = "Your posting is live."
)

type companyResolver interface {
	Resolve(ctx context.Context, employerID uuid.UUID) (*model.Company, error)
}

type recordLoader interface {
	Load(ctx context.Context, id uuid.UUID) (*LoadedOpportunity, error)
}

// SaveResult describes a successful publish or draft save.
type SaveResult struct {
	ID       uuid.UUID             `json:"id"`
	Type     model.OpportunityType `json:"type"`
	Revision int64                 `json:"revision"`
	IsDraft  bool                  `json:"is_draft"`
	Created  bool                  `json:"created"`
	// Verified is set for types with an approval gate.
	Verified *bool          `json:"verified,omitempty"`
	Outcome  review.Outcome `json:"review_outcome"`
	Changed  []string       `json:"changed_fields,omitempty"`
	Message  string         `json:"message"`
}

// PostingService runs the authoring workflow of one employer over a stored
// session.
type PostingService struct {
	sessions  session.Store
	companies companyResolver
	loader    recordLoader
	gateway   *Gateway
	validator *validation.Validator
	audit     audit.Logger
}

func NewPostingService(
	sessions session.Store,
	companies companyResolver,
	loader recordLoader,
	gateway *Gateway,
	validator *validation.Validator,
	auditLogger audit.Logger,
) *PostingService {
	if auditLogger == nil {
		auditLogger = &audit.NoOpLogger{}
	}
	return &PostingService{
		sessions:  sessions,
		companies: companies,
		loader:    loader,
		gateway:   gateway,
		validator: validator,
		audit:     auditLogger,
	}
}

// StartSession opens a session for a new posting of type t, or for editing
// the stored posting editID when it is set. An edited posting keeps its
// stored type and t is ignored.
func (s *PostingService) StartSession(ctx context.Context, employerID uuid.UUID, t model.OpportunityType, editID *uuid.UUID) (*session.Session, error) {
	company, err := s.resolveCompany(ctx, employerID)
	if err != nil {
		return nil, err
	}

	var sess *session.Session
	if editID == nil {
		f, err := form.New(t)
		if err != nil {
			return nil, err
		}
		sess = session.New(employerID, f)
	} else {
		loaded, err := s.loader.Load(ctx, *editID)
		if err != nil {
			return nil, err
		}
		// Postings of another company read as missing.
		owner := loaded.Record.Base().CompanyID
		if company == nil || owner == nil || *owner != company.ID {
			return nil, domain.ErrOpportunityNotFound
		}
		f, err := form.FromRecord(loaded.Record)
		if err != nil {
			return nil, err
		}

		sess = session.New(employerID, f)
		id := loaded.Record.Base().ID
		sess.ExistingID = &id
		sess.ExistingType = loaded.Type
		sess.Revision = loaded.Record.Base().Revision
		if job, ok := loaded.Record.(*model.ProfessionalJob); ok && job.Verified {
			sess.WasVerified = true
			sess.Snapshot = review.TakeSnapshot(f)
		}
	}

	if company != nil {
		sess.Form.LockCompany(company)
		sess.Company = company
	}

	if err := s.sessions.Create(ctx, sess); err != nil {
		return nil, fmt.Errorf("creating session: %w", err)
	}
	return sess, nil
}

// Session returns a session owned by the employer.
func (s *PostingService) Session(ctx context.Context, employerID uuid.UUID, sid string) (*session.Session, error) {
	sess, err := s.sessions.Get(ctx, sid)
	if err != nil {
		return nil, err
	}
	if sess.EmployerID != employerID {
		return nil, domain.ErrSessionNotFound
	}
	return sess, nil
}

// Discard drops a session. Nothing already saved is touched.
func (s *PostingService) Discard(ctx context.Context, employerID uuid.UUID, sid string) error {
	if _, err := s.Session(ctx, employerID, sid); err != nil {
		return err
	}
	return s.sessions.Delete(ctx, sid)
}

// SubmitDisabled reports whether publishing is blocked by an empty required
// field.
func (s *PostingService) SubmitDisabled(sess *session.Session) bool {
	return s.validator.SubmitDisabled(sess.Form, false)
}

func (s *PostingService) SwitchType(ctx context.Context, employerID uuid.UUID, sid string, t model.OpportunityType) (*session.Session, error) {
	return s.mutate(ctx, employerID, sid, func(sess *session.Session) error {
		return sess.Form.SwitchType(t)
	})
}

// SetFields assigns several scalar fields. Either all of them are applied or
// none.
func (s *PostingService) SetFields(ctx context.Context, employerID uuid.UUID, sid string, values map[string]string) (*session.Session, error) {
	names := make([]string, 0, len(values))
	for name := range values {
		names = append(names, name)
	}
	sort.Strings(names)

	return s.mutate(ctx, employerID, sid, func(sess *session.Session) error {
		for _, name := range names {
			if err := sess.Form.SetField(name, values[name]); err != nil {
				return err
			}
		}
		return nil
	})
}

func (s *PostingService) AddLine(ctx context.Context, employerID uuid.UUID, sid, list string) (*session.Session, error) {
	return s.editList(ctx, employerID, sid, list, func(l *form.Lines) error {
		l.Add()
		return nil
	})
}

func (s *PostingService) SetLine(ctx context.Context, employerID uuid.UUID, sid, list string, index int, value string) (*session.Session, error) {
	return s.editList(ctx, employerID, sid, list, func(l *form.Lines) error {
		return l.Set(index, value)
	})
}

func (s *PostingService) RemoveLine(ctx context.Context, employerID uuid.UUID, sid, list string, index int) (*session.Session, error) {
	return s.editList(ctx, employerID, sid, list, func(l *form.Lines) error {
		return l.Remove(index)
	})
}

// SetListText replaces a whole list with raw line-delimited text.
func (s *PostingService) SetListText(ctx context.Context, employerID uuid.UUID, sid, list, text string) (*session.Session, error) {
	return s.editList(ctx, employerID, sid, list, func(l *form.Lines) error {
		*l = form.ParseLines(text)
		return nil
	})
}

func (s *PostingService) AddGroup(ctx context.Context, employerID uuid.UUID, sid string) (*session.Session, error) {
	return s.mutate(ctx, employerID, sid, func(sess *session.Session) error {
		sess.Form.Common.Operations.AddGroup()
		return nil
	})
}

func (s *PostingService) SetHeading(ctx context.Context, employerID uuid.UUID, sid string, group int, heading string) (*session.Session, error) {
	return s.mutate(ctx, employerID, sid, func(sess *session.Session) error {
		return sess.Form.Common.Operations.SetHeading(group, heading)
	})
}

func (s *PostingService) RemoveGroup(ctx context.Context, employerID uuid.UUID, sid string, group int) (*session.Session, error) {
	return s.mutate(ctx, employerID, sid, func(sess *session.Session) error {
		return sess.Form.Common.Operations.RemoveGroup(group)
	})
}

func (s *PostingService) AddItem(ctx context.Context, employerID uuid.UUID, sid string, group int) (*session.Session, error) {
	return s.editItems(ctx, employerID, sid, group, func(l *form.Lines) error {
		l.Add()
		return nil
	})
}

func (s *PostingService) SetItem(ctx context.Context, employerID uuid.UUID, sid string, group, index int, value string) (*session.Session, error) {
	return s.editItems(ctx, employerID, sid, group, func(l *form.Lines) error {
		return l.Set(index, value)
	})
}

func (s *PostingService) RemoveItem(ctx context.Context, employerID uuid.UUID, sid string, group, index int) (*session.Session, error) {
	return s.editItems(ctx, employerID, sid, group, func(l *form.Lines) error {
		return l.Remove(index)
	})
}

// Next moves to the following step if the current step's requirements are
// met.
func (s *PostingService) Next(ctx context.Context, employerID uuid.UUID, sid string) (*session.Session, error) {
	return s.mutate(ctx, employerID, sid, func(sess *session.Session) error {
		step, err := s.validator.Advance(sess.Step, sess.Form)
		if err != nil {
			return err
		}
		sess.Step = step
		return nil
	})
}

// Back moves to the previous step. It never fails on the first step.
func (s *PostingService) Back(ctx context.Context, employerID uuid.UUID, sid string) (*session.Session, error) {
	return s.mutate(ctx, employerID, sid, func(sess *session.Session) error {
		sess.Step = sess.Step.Prev()
		return nil
	})
}

// Publish validates the form and saves it as a live posting. It needs a
// resolved company.
func (s *PostingService) Publish(ctx context.Context, employerID uuid.UUID, sid string) (*SaveResult, error) {
	sess, release, err := s.lockForSave(ctx, employerID, sid)
	if err != nil {
		return nil, err
	}
	defer release()

	// The employer may have created a company since the session started.
	if sess.Company == nil {
		company, err := s.resolveCompany(ctx, employerID)
		if err != nil {
			return nil, err
		}
		if company == nil {
			return nil, domain.ErrCompanyRequired
		}
		sess.Form.LockCompany(company)
		sess.Company = company
	}

	if err := s.validator.CheckPublish(sess.Form); err != nil {
		return nil, err
	}
	return s.persist(ctx, sess, false)
}

// SaveDraft saves the form with is_draft set and without validation.
func (s *PostingService) SaveDraft(ctx context.Context, employerID uuid.UUID, sid string) (*SaveResult, error) {
	sess, release, err := s.lockForSave(ctx, employerID, sid)
	if err != nil {
		return nil, err
	}
	defer release()

	return s.persist(ctx, sess, true)
}

// lockForSave takes the save lock of an owned session and reads the session
// again under it, so a save always sees the id and revision written by the
// one before it.
func (s *PostingService) lockForSave(ctx context.Context, employerID uuid.UUID, sid string) (*session.Session, func(), error) {
	if _, err := s.Session(ctx, employerID, sid); err != nil {
		return nil, nil, err
	}

	release, err := s.sessions.Acquire(ctx, sid, session.ActionSave)
	if err != nil {
		return nil, nil, err
	}

	sess, err := s.Session(ctx, employerID, sid)
	if err != nil {
		release()
		return nil, nil, err
	}
	return sess, release, nil
}

func (s *PostingService) persist(ctx context.Context, sess *session.Session, isDraft bool) (*SaveResult, error) {
	decision := review.Decide(sess.Snapshot, sess.Form, sess.WasVerified)

	rec, err := s.gateway.Build(sess.Form, isDraft)
	if err != nil {
		return nil, err
	}
	if job, ok := rec.(*model.ProfessionalJob); ok {
		job.Verified = decision.Verified
	}

	target := sess.Target()
	id, err := s.gateway.Save(ctx, rec, target, sess.Revision)
	if err != nil {
		return nil, err
	}

	s.recordAudit(ctx, sess.EmployerID, rec, target == nil, isDraft, decision)

	result := &SaveResult{
		ID:       id,
		Type:     rec.Type(),
		Revision: rec.Base().Revision,
		IsDraft:  isDraft,
		Created:  target == nil,
		Outcome:  decision.Outcome,
		Changed:  decision.Changed,
		Message:  decision.Message,
	}
	if decision.Outcome != review.OutcomeNotApplicable {
		verified := decision.Verified
		result.Verified = &verified
	}
	switch {
	case isDraft && decision.Outcome != review.OutcomeReset:
		result.Message = draftSavedMessage
	case result.Message == "":
		result.Message = publishedLiveMessage
	}

	sess.ExistingID = &id
	sess.ExistingType = rec.Type()
	sess.Revision = result.Revision
	sess.WasVerified = decision.Verified
	sess.Snapshot = nil
	if decision.Verified {
		sess.Snapshot = review.TakeSnapshot(sess.Form)
	}
	sess.UpdatedAt = time.Now().UTC()
	if err := s.sessions.Save(ctx, sess); err != nil {
		slog.WarnContext(ctx, "Saved posting but failed to update session", "error", err, "session", sess.ID, "id", id)
	}

	return result, nil
}

func (s *PostingService) recordAudit(ctx context.Context, employerID uuid.UUID, rec model.Opportunity, created, isDraft bool, decision review.Decision) {
	contextData := map[string]interface{}{
		"review_outcome": string(decision.Outcome),
		"revision":       rec.Base().Revision,
	}

	var err error
	switch {
	case isDraft:
		contextData["created"] = created
		err = s.audit.LogDraftSave(ctx, employerID, rec, contextData)
	case created:
		err = s.audit.LogOpportunityCreate(ctx, employerID, rec, contextData)
	default:
		err = s.audit.LogOpportunityUpdate(ctx, employerID, rec, contextData)
	}
	if err != nil {
		slog.ErrorContext(ctx, "Failed to write audit log", "error", err, "id", rec.Base().ID)
	}

	if decision.Outcome == review.OutcomeReset {
		if err := s.audit.LogReviewReset(ctx, employerID, rec, decision.Changed); err != nil {
			slog.ErrorContext(ctx, "Failed to write audit log", "error", err, "id", rec.Base().ID)
		}
	}
}

// resolveCompany returns nil without error when the employer has no company.
// Drafts do not need one.
func (s *PostingService) resolveCompany(ctx context.Context, employerID uuid.UUID) (*model.Company, error) {
	company, err := s.companies.Resolve(ctx, employerID)
	if err != nil {
		if errors.Is(err, domain.ErrCompanyRequired) {
			return nil, nil
		}
		return nil, fmt.Errorf("resolving company: %w", err)
	}
	return company, nil
}

func (s *PostingService) mutate(ctx context.Context, employerID uuid.UUID, sid string, fn func(*session.Session) error) (*session.Session, error) {
	sess, err := s.Session(ctx, employerID, sid)
	if err != nil {
		return nil, err
	}
	if err := fn(sess); err != nil {
		return nil, err
	}

	sess.UpdatedAt = time.Now().UTC()
	if err := s.sessions.Save(ctx, sess); err != nil {
		return nil, fmt.Errorf("saving session: %w", err)
	}
	return sess, nil
}

func (s *PostingService) editList(ctx context.Context, employerID uuid.UUID, sid, list string, fn func(*form.Lines) error) (*session.Session, error) {
	return s.mutate(ctx, employerID, sid, func(sess *session.Session) error {
		l, err := sess.Form.List(list)
		if err != nil {
			return err
		}
		return fn(l)
	})
}

func (s *PostingService) editItems(ctx context.Context, employerID uuid.UUID, sid string, group int, fn func(*form.Lines) error) (*session.Session, error) {
	return s.mutate(ctx, employerID, sid, func(sess *session.Session) error {
		items, err := sess.Form.Common.Operations.Items(group)
		if err != nil {
			return err
		}
		return fn(items)
	})
}
