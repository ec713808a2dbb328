// Package agent implements the automated responder and the escalation
// coordinator: it answers questions from the business-info table and the
// knowledge base, escalates what it cannot answer, and folds supervisor
// answers back into the knowledge base.
package agent

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"helpdesk/internal/config"
	"helpdesk/internal/db"
	"helpdesk/internal/metrics"
	"helpdesk/internal/models"
	"helpdesk/internal/notify"
)

// ErrNoAnswer signals that neither the business-info table nor the knowledge
// base could answer the question and the caller must escalate.
var ErrNoAnswer = errors.New("no answer available")

// Answer sources reported to callers.
const (
	SourceBusinessInfo  = "business_info"
	SourceKnowledgeBase = "knowledge_base"
	SourceEscalated     = "escalated"
)

// Agent answers customer questions and coordinates escalations.
type Agent struct {
	db       *db.DB
	cfg      *config.Config
	topics   []config.BusinessTopic
	notifier *notify.Notifier
}

// New creates an agent over the given business-info table.
func New(database *db.DB, cfg *config.Config, topics []config.BusinessTopic, notifier *notify.Notifier) *Agent {
	return &Agent{
		db:       database,
		cfg:      cfg,
		topics:   topics,
		notifier: notifier,
	}
}

// CallResult is the outcome of one simulated inbound call.
type CallResult struct {
	Customer    *models.Customer
	RespondedBy string              // SourceBusinessInfo, SourceKnowledgeBase, or SourceEscalated
	Answer      string              // set when answered
	Request     *models.HelpRequest // set when escalated
}

// HandleCall registers the caller and answers their question, escalating to
// a supervisor when neither the business-info table nor the knowledge base
// can answer.
func (a *Agent) HandleCall(ctx context.Context, phone, name, question string) (*CallResult, error) {
	customer, err := a.db.CreateOrGetCustomer(ctx, phone, name)
	if err != nil {
		return nil, fmt.Errorf("failed to register customer: %w", err)
	}

	answer, source, err := a.AnswerQuestion(ctx, question)
	if err == nil {
		metrics.RecordCall(source)
		return &CallResult{Customer: customer, RespondedBy: source, Answer: answer}, nil
	}
	if !errors.Is(err, ErrNoAnswer) {
		return nil, err
	}

	request, err := a.Escalate(ctx, customer, question)
	if err != nil {
		return nil, err
	}

	metrics.RecordCall(SourceEscalated)
	return &CallResult{Customer: customer, RespondedBy: SourceEscalated, Request: request}, nil
}

// AnswerQuestion tries the business-info table first, then the knowledge
// base. Business info always takes priority; the knowledge base is not
// consulted when a business topic matches. Returns ErrNoAnswer when neither
// source can answer.
func (a *Agent) AnswerQuestion(ctx context.Context, question string) (answer, source string, err error) {
	if answer, ok := matchBusinessInfo(a.topics, question); ok {
		return answer, SourceBusinessInfo, nil
	}

	entry, err := a.db.FindAnswer(ctx, question)
	if err == nil {
		return entry.Answer, SourceKnowledgeBase, nil
	}
	if errors.Is(err, db.ErrEntryNotFound) {
		return "", "", ErrNoAnswer
	}
	return "", "", fmt.Errorf("knowledge base lookup failed: %w", err)
}

// Escalate creates a pending help request with a timeout deadline and
// notifies supervisors. The notification is informational only.
func (a *Agent) Escalate(ctx context.Context, customer *models.Customer, question string) (*models.HelpRequest, error) {
	request, err := a.db.CreateRequest(ctx, customer, question, a.cfg.RequestTimeout)
	if err != nil {
		return nil, fmt.Errorf("failed to create help request: %w", err)
	}

	a.notifier.NotifyEscalation(request)

	return request, nil
}

// Resolve stamps the supervisor's answer on the request, memorizes the
// answer in the knowledge base, and follows up with the customer. The ledger
// update commits first; a failure learning or following up afterwards leaves
// the request resolved and is surfaced to the caller.
func (a *Agent) Resolve(ctx context.Context, id uuid.UUID, answer, supervisorID string) (*models.HelpRequest, error) {
	if supervisorID == "" {
		supervisorID = a.cfg.DefaultSupervisorID
	}

	request, err := a.db.ResolveRequest(ctx, id, answer, supervisorID)
	if err != nil {
		return nil, err
	}

	if _, err := a.learnFromResponse(ctx, request); err != nil {
		return request, err
	}

	if err := a.followUpWithCustomer(ctx, request); err != nil {
		return request, err
	}

	return request, nil
}

// learnFromResponse records the supervisor's answer as a knowledge entry
// keyed by the original question. A request without a supervisor answer is a
// contract violation.
func (a *Agent) learnFromResponse(ctx context.Context, request *models.HelpRequest) (*models.KnowledgeEntry, error) {
	if request.SupervisorAnswer == nil {
		return nil, fmt.Errorf("cannot learn from request %s: no supervisor answer", request.ID)
	}

	entry, err := a.db.AddKnowledgeEntry(ctx, request.Question, *request.SupervisorAnswer, &request.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to record knowledge entry: %w", err)
	}
	return entry, nil
}

// followUpWithCustomer relays the answer to the customer and bumps their
// last-contacted time.
func (a *Agent) followUpWithCustomer(ctx context.Context, request *models.HelpRequest) error {
	if err := a.notifier.FollowUpCustomer(request); err != nil {
		return err
	}

	if err := a.db.TouchCustomer(ctx, request.CustomerPhone); err != nil {
		return fmt.Errorf("failed to update customer contact time: %w", err)
	}
	return nil
}
