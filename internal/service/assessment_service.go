package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"finhealth/internal/cache"
	"finhealth/internal/catalog"
	"finhealth/internal/geo"
	"finhealth/internal/model"
	"finhealth/internal/repository"
	"finhealth/internal/scoring"
	"finhealth/internal/wizard"
)

var (
	ErrSessionNotFound  = errors.New("assessment session not found")
	ErrSubmissionFailed = errors.New("submission failed, try again")
	ErrNotCompleted     = errors.New("assessment not completed")
)

// AnswerInput is a partial update to the current question's answer
type AnswerInput struct {
	Exists        *bool `json:"exists"`
	Effectiveness *int  `json:"effectiveness"`
}

// AssessmentService runs wizard sessions stored in Redis
type AssessmentService struct {
	engine      *scoring.Engine
	catalog     *catalog.Catalog
	wizard      *wizard.Wizard
	sessions    cache.SessionCache
	submissions repository.SubmissionRepo
	mailer      Mailer
	locator     geo.Locator
	auth        *AuthService
	logger      *zap.Logger
	now         func() time.Time
}

// NewAssessmentService creates a new assessment service
func NewAssessmentService(
	engine *scoring.Engine,
	sessions cache.SessionCache,
	submissions repository.SubmissionRepo,
	mailer Mailer,
	locator geo.Locator,
	auth *AuthService,
	logger *zap.Logger,
) *AssessmentService {
	c := engine.Catalog()
	ids := make([]string, 0, c.Len())
	for _, q := range c.Questions() {
		ids = append(ids, q.ID)
	}
	if locator == nil {
		locator = geo.NoopLocator{}
	}
	return &AssessmentService{
		engine:      engine,
		catalog:     c,
		wizard:      wizard.New(ids),
		sessions:    sessions,
		submissions: submissions,
		mailer:      mailer,
		locator:     locator,
		auth:        auth,
		logger:      logger,
		now:         time.Now,
	}
}

// Catalog returns the question set sessions walk through
func (s *AssessmentService) Catalog() *catalog.Catalog {
	return s.catalog
}

// Start creates a session at the first question and a token scoped to it
func (s *AssessmentService) Start(ctx context.Context) (*model.StartSessionResponse, error) {
	now := s.now().UTC()
	session := &model.AssessmentSession{
		ID:        uuid.New().String(),
		State:     s.wizard.Initial(),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.sessions.Set(ctx, session); err != nil {
		return nil, fmt.Errorf("save session: %w", err)
	}

	token, err := s.auth.GenerateSessionToken(session.ID)
	if err != nil {
		return nil, err
	}

	s.logger.Debug("assessment started", zap.String("sessionId", session.ID))
	return &model.StartSessionResponse{Token: token, View: s.view(session)}, nil
}

// Get returns the current view of a session
func (s *AssessmentService) Get(ctx context.Context, id string) (*model.SessionView, error) {
	session, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.view(session), nil
}

// Answer records existence and/or effectiveness for the current question
func (s *AssessmentService) Answer(ctx context.Context, id string, in AnswerInput) (*model.SessionView, error) {
	if in.Exists == nil && in.Effectiveness == nil {
		return nil, &wizard.ValidationError{Fields: []string{"exists", "effectiveness"}}
	}
	var actions []wizard.Action
	if in.Exists != nil {
		actions = append(actions, wizard.SetExists{Exists: *in.Exists})
	}
	if in.Effectiveness != nil {
		actions = append(actions, wizard.SetEffectiveness{Value: *in.Effectiveness})
	}
	return s.apply(ctx, id, actions...)
}

// Next advances past the current question
func (s *AssessmentService) Next(ctx context.Context, id string) (*model.SessionView, error) {
	return s.apply(ctx, id, wizard.Next{})
}

// Back returns to the previous screen
func (s *AssessmentService) Back(ctx context.Context, id string) (*model.SessionView, error) {
	return s.apply(ctx, id, wizard.Back{})
}

// apply runs actions in order and saves only if all succeed
func (s *AssessmentService) apply(ctx context.Context, id string, actions ...wizard.Action) (*model.SessionView, error) {
	session, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}

	state := session.State
	for _, a := range actions {
		state, err = s.wizard.Reduce(state, a)
		if err != nil {
			return nil, err
		}
	}

	session.State = state
	if err := s.save(ctx, session); err != nil {
		return nil, err
	}
	return s.view(session), nil
}

// Submit validates the lead, scores the answers and delivers the result.
// Delivery is attempted once; on failure the session stays on the lead form.
func (s *AssessmentService) Submit(ctx context.Context, id string, lead model.LeadForm, meta model.SubmissionMeta) (*model.SessionView, error) {
	acquired, err := s.sessions.AcquireSubmitLock(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("acquire submit lock: %w", err)
	}
	if !acquired {
		return nil, wizard.ErrSubmitInProgress
	}
	// delivery outcome must be persisted even if the caller goes away
	bg := context.WithoutCancel(ctx)
	defer func() {
		if err := s.sessions.ReleaseSubmitLock(bg, id); err != nil {
			s.logger.Warn("release submit lock", zap.String("sessionId", id), zap.Error(err))
		}
	}()

	session, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}

	state := session.State
	if state.Submitting {
		// lock was free, so the previous attempt never finished
		state, _ = s.wizard.Reduce(state, wizard.SubmitFailed{Reason: ErrSubmissionFailed.Error()})
	}

	state, err = s.wizard.Reduce(state, wizard.SubmitStarted{Lead: lead})
	if err != nil {
		return nil, err
	}
	session.State = state
	if err := s.save(ctx, session); err != nil {
		return nil, err
	}

	result := s.engine.Assess(state.Answers)
	country := s.lookupCountry(meta.RemoteIP)
	msg := BuildEmail(s.catalog, state, &result, meta, country)

	if sendErr := s.mailer.Send(ctx, msg); sendErr != nil {
		s.logger.Error("submission delivery failed",
			zap.String("sessionId", id),
			zap.Error(sendErr),
		)
		session.State, _ = s.wizard.Reduce(state, wizard.SubmitFailed{Reason: ErrSubmissionFailed.Error()})
		if err := s.save(bg, session); err != nil {
			s.logger.Error("save failed submission state", zap.String("sessionId", id), zap.Error(err))
		}
		return nil, fmt.Errorf("%w: %v", ErrSubmissionFailed, sendErr)
	}

	session.State, err = s.wizard.Reduce(state, wizard.SubmitSucceeded{Result: result})
	if err != nil {
		return nil, err
	}
	if err := s.save(bg, session); err != nil {
		return nil, err
	}

	s.archive(bg, session, msg, country, meta)
	s.logger.Info("assessment submitted",
		zap.String("sessionId", id),
		zap.String("company", state.Lead.Company),
		zap.Float64("fri", result.Indexes.FRI),
		zap.Float64("dri", result.Indexes.DRI),
		zap.Float64("fei", result.Indexes.FEI),
	)
	return s.view(session), nil
}

// Result returns the scored result of a completed session
func (s *AssessmentService) Result(ctx context.Context, id string) (*model.AssessmentResult, error) {
	session, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if session.State.Step != model.StepResults || session.State.Result == nil {
		return nil, ErrNotCompleted
	}
	return session.State.Result, nil
}

// Score runs the engine on an ad-hoc answer map without a session
func (s *AssessmentService) Score(answers model.AnswerStore) (*model.AssessmentResult, error) {
	if err := ValidateAnswers(s.catalog, answers); err != nil {
		return nil, err
	}
	result := s.engine.Assess(answers)
	return &result, nil
}

// ValidateAnswers rejects unknown question ids and out-of-range ratings
func ValidateAnswers(c *catalog.Catalog, answers model.AnswerStore) error {
	var bad []string
	for _, q := range c.Questions() {
		a, ok := answers[q.ID]
		if !ok || a.Effectiveness == nil {
			continue
		}
		if *a.Effectiveness < model.MinEffectiveness || *a.Effectiveness > model.MaxEffectiveness {
			bad = append(bad, q.ID)
		}
	}
	for id := range answers {
		if _, ok := c.Lookup(id); !ok {
			bad = append(bad, id)
		}
	}
	if len(bad) > 0 {
		return &wizard.ValidationError{Fields: bad}
	}
	return nil
}

func (s *AssessmentService) archive(ctx context.Context, session *model.AssessmentSession, msg *model.EmailMessage, country string, meta model.SubmissionMeta) {
	if s.submissions == nil || session.State.Result == nil {
		return
	}
	sub := &model.Submission{
		ID:               uuid.New().String(),
		SessionID:        session.ID,
		Lead:             session.State.Lead,
		Result:           *session.State.Result,
		FormattedAnswers: msg.FormattedAnswers,
		ResultsSummary:   msg.ResultsSummary,
		Country:          country,
		SourceURL:        meta.SourceURL,
		CreatedAt:        s.now().UTC(),
	}
	if err := s.submissions.Create(ctx, sub); err != nil {
		s.logger.Error("archive submission", zap.String("sessionId", session.ID), zap.Error(err))
	}
}

func (s *AssessmentService) lookupCountry(ip string) string {
	if ip == "" {
		return ""
	}
	country, err := s.locator.Country(ip)
	if err != nil {
		s.logger.Debug("geo lookup failed", zap.String("ip", ip), zap.Error(err))
		return ""
	}
	return country
}

func (s *AssessmentService) load(ctx context.Context, id string) (*model.AssessmentSession, error) {
	session, err := s.sessions.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}
	if session == nil {
		return nil, ErrSessionNotFound
	}
	return session, nil
}

func (s *AssessmentService) save(ctx context.Context, session *model.AssessmentSession) error {
	session.UpdatedAt = s.now().UTC()
	if err := s.sessions.Set(ctx, session); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

func (s *AssessmentService) view(session *model.AssessmentSession) *model.SessionView {
	st := session.State
	v := &model.SessionView{
		SessionID:  session.ID,
		Step:       st.Step,
		Index:      st.Index,
		Total:      s.wizard.Total(),
		CanProceed: s.wizard.CanProceed(st),
		Submitting: st.Submitting,
		LastError:  st.LastError,
		Result:     st.Result,
	}
	if id, ok := s.wizard.CurrentQuestionID(st); ok {
		q, _ := s.catalog.Lookup(id)
		v.Question = &q
		v.Category = s.catalog.CategoryTitle(q.CategoryID)
		if a, ok := st.Answers[id]; ok {
			v.Answer = &a
		}
	}
	return v
}
