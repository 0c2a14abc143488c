package chat

import (
	"context"
	"sync"

	"github.com/trezcool/smartedu/core"
)

// EngineMock replies with canned answers and remembers what it was sent.
type EngineMock struct {
	Replies []EngineReply
	Err     error

	mu   sync.Mutex
	sent []EngineMessage
}

var _ Engine = (*EngineMock)(nil)

func (e *EngineMock) Send(_ context.Context, msg EngineMessage) ([]EngineReply, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.sent = append(e.sent, msg)
	if e.Err != nil {
		return nil, e.Err
	}
	return e.Replies, nil
}

// Sent returns the messages received so far.
func (e *EngineMock) Sent() []EngineMessage {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]EngineMessage(nil), e.sent...)
}

// LoggerMock records log messages instead of printing them.
type LoggerMock struct {
	mu       sync.Mutex
	Messages []string
}

var _ core.Logger = (*LoggerMock)(nil)

func (l *LoggerMock) log(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.Messages = append(l.Messages, msg)
}

func (l *LoggerMock) Debug(msg string, _ ...interface{}) { l.log(msg) }
func (l *LoggerMock) Info(msg string, _ ...interface{})  { l.log(msg) }
func (l *LoggerMock) Warn(msg string, _ ...interface{})  { l.log(msg) }
func (l *LoggerMock) Error(msg string, _ ...interface{}) { l.log(msg) }
func (l *LoggerMock) Fatal(msg string, _ ...interface{}) { l.log(msg) }
