package navigation

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newTestPopupStack(t *testing.T) (*PopupStack, *MockPopupHost) {
	t.Helper()
	host := NewMockPopupHost()
	ps, err := NewPopupStack(host)
	require.NoError(t, err)
	t.Cleanup(func() { _ = ps.Close() })
	return ps, host
}

func TestNewPopupStackRequiresHost(t *testing.T) {
	_, err := NewPopupStack(nil)
	require.ErrorIs(t, err, ErrNullArgument)
}

func TestPopupStackPushPop(t *testing.T) {
	ctx := context.Background()
	ps, host := newTestPopupStack(t)
	a, b := &destroyVM{id: "a"}, &destroyVM{id: "b"}

	host.On("PushPopup", mock.Anything, "toast", true).Return(nil)
	host.On("PopPopup", true).Return(nil)

	require.NoError(t, ps.PushPopup(ctx, a, "toast", true))
	require.NoError(t, ps.PushPopup(ctx, b, "toast", true))
	require.NoError(t, ps.PopPopup(ctx, true))

	top, err := ps.TopPopup()
	require.NoError(t, err)
	assert.Same(t, a, top)
	assert.Equal(t, 1, ps.PopupCount())
	assert.Equal(t, 1, b.destroyCount())
}

func TestPopupStackPopEmpty(t *testing.T) {
	ps, host := newTestPopupStack(t)

	err := ps.PopPopup(context.Background(), true)
	require.ErrorIs(t, err, ErrEmptyStack)
	assert.Equal(t, MessageStackEmpty, err.Error())
	host.AssertNotCalled(t, "PopPopup", mock.Anything)
}

func TestPopupStackPopAllRemovesOneAtATime(t *testing.T) {
	ctx := context.Background()
	ps, host := newTestPopupStack(t)
	rec := &recorder{}
	a, b, c := &destroyVM{id: "a", rec: rec}, &destroyVM{id: "b", rec: rec}, &destroyVM{id: "c", rec: rec}

	host.On("PushPopup", mock.Anything, "", false).Return(nil)
	host.On("PopAllPopups", false).Return(nil).Once()

	for _, vm := range []ViewModel{a, b, c} {
		require.NoError(t, ps.PushPopup(ctx, vm, "", false))
	}

	sub := ps.PopupStack(ctx)
	defer sub.Close()
	assert.Equal(t, []string{"a", "b", "c"}, ids(receive(t, sub)))

	require.NoError(t, ps.PopAllPopups(ctx, false))

	assert.Equal(t, []string{"a", "b"}, ids(receive(t, sub)))
	assert.Equal(t, []string{"a"}, ids(receive(t, sub)))
	assert.Empty(t, receive(t, sub))
	assert.Equal(t, []string{"destroy:c", "destroy:b", "destroy:a"}, rec.list())
}

func TestPopupStackPopAllEmptyIsNoop(t *testing.T) {
	ps, host := newTestPopupStack(t)

	require.NoError(t, ps.PopAllPopups(context.Background(), true))
	host.AssertNotCalled(t, "PopAllPopups", mock.Anything)
}

func TestPopupStackRemovePopup(t *testing.T) {
	ctx := context.Background()
	ps, host := newTestPopupStack(t)
	a, b, c := &destroyVM{id: "a"}, &destroyVM{id: "b"}, &destroyVM{id: "c"}

	host.On("PushPopup", mock.Anything, "", true).Return(nil)
	host.On("RemovePopup", b).Return(nil)

	for _, vm := range []ViewModel{a, b, c} {
		require.NoError(t, ps.PushPopup(ctx, vm, "", true))
	}
	require.NoError(t, ps.RemovePopup(ctx, b))

	top, err := ps.TopPopup()
	require.NoError(t, err)
	assert.Same(t, c, top)
	assert.Equal(t, 2, ps.PopupCount())
	assert.Equal(t, 1, b.destroyCount())
	require.ErrorIs(t, ps.RemovePopup(ctx, nil), ErrNullArgument)
}

func TestPopupStackReconcilesHostPop(t *testing.T) {
	ctx := context.Background()
	ps, host := newTestPopupStack(t)
	a := &destroyVM{id: "a"}

	host.On("PushPopup", a, "", true).Return(nil)
	require.NoError(t, ps.PushPopup(ctx, a, "", true))

	events := ps.Events(ctx)
	defer events.Close()

	host.EventsC <- PopupEvent{Kind: PopupPopping, ViewModel: a, Animated: true, Native: true}
	host.EventsC <- PopupEvent{Kind: PopupPopped, ViewModel: a, Animated: true, Native: true}

	assert.Equal(t, PopupPopping, receive(t, events).Kind)
	ev := receive(t, events)
	assert.Equal(t, PopupPopped, ev.Kind)
	assert.Same(t, a, ev.ViewModel)

	assert.Equal(t, 0, ps.PopupCount())
	assert.Equal(t, 1, a.destroyCount())
	host.AssertNotCalled(t, "PopPopup", mock.Anything)
}

func TestPopupStackIgnoresEchoOfOwnPop(t *testing.T) {
	ctx := context.Background()
	ps, host := newTestPopupStack(t)
	a, b := &destroyVM{id: "a"}, &destroyVM{id: "b"}

	host.On("PushPopup", mock.Anything, "", true).Return(nil)
	require.NoError(t, ps.PushPopup(ctx, a, "", true))
	require.NoError(t, ps.PushPopup(ctx, b, "", true))

	events := ps.Events(ctx)
	defer events.Close()

	host.On("PopPopup", true).Run(func(mock.Arguments) {
		host.EventsC <- PopupEvent{Kind: PopupPopped, ViewModel: b, Animated: true, Native: true}
		// Wait for the relay so the echo is handled while the pop is in flight.
		assert.Equal(t, PopupPopped, receive(t, events).Kind)
	}).Return(nil)

	require.NoError(t, ps.PopPopup(ctx, true))

	assert.Equal(t, []ViewModel{a}, ps.popup.store.Current())
	assert.Equal(t, 1, b.destroyCount())
	assert.Equal(t, 0, a.destroyCount())
}

func TestPopupStackKeepsDuplicateAfterLateReport(t *testing.T) {
	ctx := context.Background()
	ps, host := newTestPopupStack(t)
	a := &destroyVM{id: "a"}

	host.On("PushPopup", a, "", false).Return(nil)
	require.NoError(t, ps.PushPopup(ctx, a, "", false))
	require.NoError(t, ps.PushPopup(ctx, a, "", false))

	events := ps.Events(ctx)
	defer events.Close()

	host.On("PopPopup", false).Return(nil)
	require.NoError(t, ps.PopPopup(ctx, false))

	// The host reports the requested pop after the call has returned.
	host.EventsC <- PopupEvent{Kind: PopupPopped, ViewModel: a}
	assert.Equal(t, PopupPopped, receive(t, events).Kind)

	assert.Equal(t, []ViewModel{a}, ps.popup.store.Current())
	assert.Equal(t, 1, a.destroyCount())
}

func TestPopupStackClose(t *testing.T) {
	ctx := context.Background()
	ps, host := newTestPopupStack(t)

	require.NoError(t, ps.Close())
	require.ErrorIs(t, ps.PushPopup(ctx, &plainVM{id: "a"}, "", true), ErrClosed)
	host.AssertNotCalled(t, "PushPopup", mock.Anything, mock.Anything, mock.Anything)
}

func TestPopupEventKindString(t *testing.T) {
	assert.Equal(t, "pushing", PopupPushing.String())
	assert.Equal(t, "pushed", PopupPushed.String())
	assert.Equal(t, "popping", PopupPopping.String())
	assert.Equal(t, "popped", PopupPopped.String())
	assert.Equal(t, "unknown", PopupEventKind(99).String())
}
