package chat

import (
	"context"
	"fmt"
	"reflect"
	"time"

	"github.com/kat-co/vala"
	"github.com/pkg/errors"

	"github.com/trezcool/smartedu/core"
)

const (
	UnavailableText   = "Chat service is temporarily unavailable. Please try again in a moment."
	NotUnderstoodText = "Sorry, I didn't understand that."
	messageRequired   = "this field is required"
)

var (
	NowFunc = time.Now // mockable

	// ErrEngineUnavailable is returned by an Engine whose endpoint refuses connections.
	ErrEngineUnavailable = errors.New("conversation engine unavailable")
	ErrMessageRequired   = errors.New("message is required")
)

type (
	// RecordProvider reads the academic records visible to a session.
	// Student sessions get their own rows; staff sessions get every cohort's rows tagged with a YearLevel.
	RecordProvider interface {
		FetchMarks(ctx context.Context, sess Session) ([]Record, error)
		FetchAttendance(ctx context.Context, sess Session) ([]Record, error)
		FetchFees(ctx context.Context, sess Session) ([]Record, error)
	}

	EngineMetadata struct {
		UserID   string `json:"user_id"`
		Role     string `json:"role"`
		Branch   string `json:"branch,omitempty"`
		Year     string `json:"year,omitempty"`
		RollNo   string `json:"roll_no,omitempty"`
		Username string `json:"username,omitempty"`
		Table    string `json:"table,omitempty"`
		Token    string `json:"token,omitempty"`
	}

	EngineMessage struct {
		Sender   string         `json:"sender"`
		Message  string         `json:"message"`
		Metadata EngineMetadata `json:"metadata"`
	}

	EngineReply struct {
		RecipientID string `json:"recipient_id,omitempty"`
		Text        string `json:"text"`
	}

	// Engine is the general-purpose conversational backend that handles non-academic messages.
	Engine interface {
		Send(ctx context.Context, msg EngineMessage) ([]EngineReply, error)
	}

	Service struct {
		records RecordProvider
		engine  Engine
		logger  core.Logger
	}
)

func NewService(records RecordProvider, engine Engine, logger core.Logger) *Service {
	vala.BeginValidation().Validate(
		notNil(records, "records"),
		notNil(engine, "engine"),
		notNil(logger, "logger"),
	).CheckAndPanic()

	return &Service{
		records: records,
		engine:  engine,
		logger:  logger,
	}
}

// notNil works like vala.IsNotNil but accepts collaborators of any kind, value types included.
func notNil(obtained interface{}, paramName string) vala.Checker {
	return func() (bool, string) {
		ok := obtained != nil
		if ok {
			switch v := reflect.ValueOf(obtained); v.Kind() {
			case reflect.Chan, reflect.Func, reflect.Interface, reflect.Map, reflect.Ptr, reflect.Slice:
				ok = !v.IsNil()
			}
		}
		return ok, fmt.Sprintf("Parameter was nil: %s", paramName)
	}
}

// Respond answers a chat message. Academic questions are resolved against the record provider,
// anything else is forwarded to the conversation engine along with the caller's token.
func (svc *Service) Respond(ctx context.Context, sess Session, token, message string) (Response, error) {
	message = core.CleanString(message)
	if message == "" {
		return Response{}, core.NewValidationError(
			ErrMessageRequired,
			core.FieldError{Field: "message", Error: messageRequired},
		)
	}

	q := ParseQuery(message, NowFunc())
	if q.Intent == IntentFallback {
		return svc.forward(ctx, sess, token, message)
	}

	records, err := svc.fetch(ctx, q.Intent, sess)
	if err != nil {
		return Response{}, errors.Wrapf(err, "fetching %s", q.Intent)
	}

	var resp Response
	if sess.Role.IsStaff() {
		resp = staffView(q, sess.Role, records)
	} else {
		resp = studentView(q, sess, records)
	}
	resp.Intent = q.Intent
	return resp, nil
}

func (svc *Service) fetch(ctx context.Context, kind Intent, sess Session) ([]Record, error) {
	switch kind {
	case IntentMarks:
		return svc.records.FetchMarks(ctx, sess)
	case IntentAttendance:
		return svc.records.FetchAttendance(ctx, sess)
	case IntentFees:
		return svc.records.FetchFees(ctx, sess)
	}
	return nil, errors.Errorf("no records for intent %q", kind)
}

func (svc *Service) forward(ctx context.Context, sess Session, token, message string) (Response, error) {
	replies, err := svc.engine.Send(ctx, EngineMessage{
		Sender:  sess.Sender(),
		Message: message,
		Metadata: EngineMetadata{
			UserID:   sess.ID,
			Role:     string(sess.Role),
			Branch:   sess.Branch,
			Year:     sess.Year,
			RollNo:   sess.RollNo,
			Username: sess.Username,
			Table:    sess.Table,
			Token:    token,
		},
	})
	if err != nil {
		if errors.Is(err, ErrEngineUnavailable) {
			svc.logger.Warn("conversation engine unavailable", err, sess)
			return Response{Text: UnavailableText, Success: true, Intent: IntentFallback, EngineDown: true}, nil
		}
		return Response{}, errors.Wrap(err, "forwarding to conversation engine")
	}

	text := NotUnderstoodText
	if len(replies) > 0 && replies[0].Text != "" {
		text = replies[0].Text
	}
	return Response{Text: text, Success: true, Intent: IntentFallback}, nil
}
