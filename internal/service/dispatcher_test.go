package service

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/vitormoschetta/go-wikichat/internal/model"
)

type MockLookup struct {
	mock.Mock
}

func (m *MockLookup) Lookup(ctx context.Context, query string) (string, error) {
	args := m.Called(ctx, query)
	return args.String(0), args.Error(1)
}

type MockFastResponder struct {
	mock.Mock
}

func (m *MockFastResponder) Complete(ctx context.Context, question, reference string) (string, error) {
	args := m.Called(ctx, question, reference)
	return args.String(0), args.Error(1)
}

type MockThinkingAgent struct {
	mock.Mock
}

func (m *MockThinkingAgent) Answer(ctx context.Context, question string) (string, error) {
	args := m.Called(ctx, question)
	return args.String(0), args.Error(1)
}

type mocks struct {
	lookup   *MockLookup
	fast     *MockFastResponder
	thinking *MockThinkingAgent
}

func newTestDispatcher() (*Dispatcher, mocks) {
	m := mocks{
		lookup:   new(MockLookup),
		fast:     new(MockFastResponder),
		thinking: new(MockThinkingAgent),
	}
	return NewDispatcher(m.lookup, m.fast, m.thinking), m
}

func (m mocks) assertNoCalls(t *testing.T) {
	t.Helper()
	m.lookup.AssertNotCalled(t, "Lookup", mock.Anything, mock.Anything)
	m.fast.AssertNotCalled(t, "Complete", mock.Anything, mock.Anything, mock.Anything)
	m.thinking.AssertNotCalled(t, "Answer", mock.Anything, mock.Anything)
}

func TestDispatchEmptyMessage(t *testing.T) {
	for _, mode := range []model.Mode{model.ModeFast, model.ModeThinking, "bogus", ""} {
		t.Run(string(mode), func(t *testing.T) {
			d, m := newTestDispatcher()

			answer, err := d.Dispatch(context.Background(), "", mode)

			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidInput)
			assert.Equal(t, "No message provided", err.Error())
			assert.Empty(t, answer)
			assert.Equal(t, http.StatusBadRequest, StatusCode(err))
			m.assertNoCalls(t)
		})
	}
}

func TestDispatchInvalidMode(t *testing.T) {
	for _, mode := range []model.Mode{"bogus", "", "FAST", "Thinking"} {
		t.Run(string(mode), func(t *testing.T) {
			d, m := newTestDispatcher()

			_, err := d.Dispatch(context.Background(), "Who was Ada Lovelace?", mode)

			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidInput)
			assert.Equal(t, "Invalid mode", err.Error())
			assert.Equal(t, http.StatusBadRequest, StatusCode(err))
			m.assertNoCalls(t)
		})
	}
}

func TestDispatchFastMode(t *testing.T) {
	d, m := newTestDispatcher()
	ctx := context.Background()
	question := "Who was Ada Lovelace?"
	reference := "Ada Lovelace was a mathematician."

	lookupCall := m.lookup.On("Lookup", ctx, question).Return(reference, nil).Once()
	m.fast.On("Complete", ctx, question, reference).
		Return("Question: "+question+"\nWikipedia Results: "+reference, nil).
		Once().
		NotBefore(lookupCall)

	answer, err := d.Dispatch(ctx, question, model.ModeFast)

	require.NoError(t, err)
	assert.Contains(t, answer, "mathematician")
	m.lookup.AssertNumberOfCalls(t, "Lookup", 1)
	m.fast.AssertNumberOfCalls(t, "Complete", 1)
	m.thinking.AssertNotCalled(t, "Answer", mock.Anything, mock.Anything)
}

func TestDispatchThinkingMode(t *testing.T) {
	d, m := newTestDispatcher()
	ctx := context.Background()

	m.thinking.On("Answer", ctx, "Explain tides").Return("The moon pulls the oceans.", nil).Once()

	answer, err := d.Dispatch(ctx, "Explain tides", model.ModeThinking)

	require.NoError(t, err)
	assert.Equal(t, "The moon pulls the oceans.", answer)
	m.thinking.AssertExpectations(t)
	m.lookup.AssertNotCalled(t, "Lookup", mock.Anything, mock.Anything)
	m.fast.AssertNotCalled(t, "Complete", mock.Anything, mock.Anything, mock.Anything)
}

func TestDispatchThinkingTimeout(t *testing.T) {
	d, m := newTestDispatcher()
	ctx := context.Background()

	m.thinking.On("Answer", ctx, "Explain tides").Return("", errors.New("request timeout after 30s")).Once()

	answer, err := d.Dispatch(ctx, "Explain tides", model.ModeThinking)

	require.Error(t, err)
	assert.Empty(t, answer)
	assert.Contains(t, err.Error(), "timeout")
	assert.NotErrorIs(t, err, ErrInvalidInput)
	assert.Equal(t, http.StatusInternalServerError, StatusCode(err))

	var downstream *DownstreamError
	require.ErrorAs(t, err, &downstream)
	assert.Equal(t, StageThinking, downstream.Stage)
}

func TestDispatchLookupFailureSkipsModel(t *testing.T) {
	d, m := newTestDispatcher()
	ctx := context.Background()
	cause := errors.New("dial tcp: connection refused")

	m.lookup.On("Lookup", ctx, "tides").Return("", cause).Once()

	_, err := d.Dispatch(ctx, "tides", model.ModeFast)

	require.Error(t, err)
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "dial tcp: connection refused", err.Error())

	var downstream *DownstreamError
	require.ErrorAs(t, err, &downstream)
	assert.Equal(t, StageLookup, downstream.Stage)
	m.fast.AssertNotCalled(t, "Complete", mock.Anything, mock.Anything, mock.Anything)
}

func TestDispatchFastModelFailure(t *testing.T) {
	d, m := newTestDispatcher()
	ctx := context.Background()

	m.lookup.On("Lookup", ctx, "tides").Return("Tides are...", nil).Once()
	m.fast.On("Complete", ctx, "tides", "Tides are...").Return("", errors.New("quota exceeded")).Once()

	answer, err := d.Dispatch(ctx, "tides", model.ModeFast)

	require.Error(t, err)
	assert.Empty(t, answer)
	assert.Equal(t, "quota exceeded", err.Error())
	assert.Equal(t, http.StatusInternalServerError, StatusCode(err))

	var downstream *DownstreamError
	require.ErrorAs(t, err, &downstream)
	assert.Equal(t, StageFast, downstream.Stage)
	assert.Equal(t, "fast: quota exceeded", downstream.String())
}

func TestDispatchIsRepeatable(t *testing.T) {
	d, m := newTestDispatcher()
	ctx := context.Background()

	m.lookup.On("Lookup", ctx, "q").Return("ref", nil)
	m.fast.On("Complete", ctx, "q", "ref").Return("a", nil)

	first, err1 := d.Dispatch(ctx, "q", model.ModeFast)
	second, err2 := d.Dispatch(ctx, "q", model.ModeFast)

	require.NoError(t, err1)
	require.NoError(t, err2)
	assert.Equal(t, first, second)
	m.lookup.AssertNumberOfCalls(t, "Lookup", 2)
}

func TestStatusCodeNil(t *testing.T) {
	assert.Equal(t, http.StatusOK, StatusCode(nil))
}
