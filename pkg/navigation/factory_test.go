package navigation

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestRegistryCreate(t *testing.T) {
	r := NewRegistry()
	Register(r, "", func() *plainVM { return &plainVM{id: "default"} })
	Register(r, "compact", func() *plainVM { return &plainVM{id: "compact"} })

	vm, err := r.Create(reflect.TypeOf((**plainVM)(nil)).Elem(), "")
	require.NoError(t, err)
	assert.Equal(t, "default", vm.ID())

	vm, err = r.Create(reflect.TypeOf((**plainVM)(nil)).Elem(), "compact")
	require.NoError(t, err)
	assert.Equal(t, "compact", vm.ID())
}

func TestRegistryCreateUnregistered(t *testing.T) {
	r := NewRegistry()

	_, err := r.Create(reflect.TypeOf((**plainVM)(nil)).Elem(), "missing")
	require.ErrorIs(t, err, ErrNotRegistered)
	assert.True(t, IsFactoryResolution(err))

	var resErr *FactoryResolutionError
	require.ErrorAs(t, err, &resErr)
	assert.Equal(t, "missing", resErr.Contract)
	assert.Equal(t, "*navigation.plainVM", resErr.Type)
}

func TestResolve(t *testing.T) {
	tests := []struct {
		name      string
		setup     func(f *MockViewModelFactory)
		wantID    string
		wantErrIs error
	}{
		{
			name: "returns created view-model",
			setup: func(f *MockViewModelFactory) {
				f.EXPECT().Create(reflect.TypeOf((**plainVM)(nil)).Elem(), "").Return(&plainVM{id: "made"}, nil)
			},
			wantID: "made",
		},
		{
			name: "wraps factory error",
			setup: func(f *MockViewModelFactory) {
				f.EXPECT().Create(gomock.Any(), "").Return(nil, errors.New("no constructor"))
			},
		},
		{
			name: "rejects wrong type",
			setup: func(f *MockViewModelFactory) {
				f.EXPECT().Create(gomock.Any(), "").Return(&destroyVM{id: "other"}, nil)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			factory := NewMockViewModelFactory(ctrl)
			tt.setup(factory)

			vm, err := Resolve[*plainVM](factory, "")
			if tt.wantID == "" {
				require.Error(t, err)
				assert.True(t, IsFactoryResolution(err))
				assert.Nil(t, vm)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantID, vm.ID())
		})
	}
}

func TestResolveNilFactory(t *testing.T) {
	_, err := Resolve[*plainVM](nil, "")
	require.ErrorIs(t, err, ErrNullArgument)
}

func TestPushPageOf(t *testing.T) {
	ctx := context.Background()
	s, view := newTestParameterViewStack(t)
	rec := &recorder{}

	r := NewRegistry()
	Register(r, "detail", func() *lifecycleVM { return newLifecycleVM("detail", rec) })

	view.On("PushPage", mock.Anything, "detail", false, true).Return(nil)

	vm, err := PushPageOf[*lifecycleVM](ctx, s, r, NewParameter("id", 7), "detail", false, true)
	require.NoError(t, err)
	assert.Equal(t, []ViewModel{vm}, s.Pages())
	assert.Equal(t, []string{"navigating:detail:{id: 7}", "to:detail:{id: 7}"}, rec.list())
}

func TestPushModalOfUnresolved(t *testing.T) {
	ctx := context.Background()
	s, view := newTestParameterViewStack(t)

	_, err := PushModalOf[*lifecycleVM](ctx, s, NewRegistry(), Parameter{}, "", false)
	require.ErrorIs(t, err, ErrNotRegistered)
	view.AssertNotCalled(t, "PushModal", mock.Anything, mock.Anything, mock.Anything)
	assert.Equal(t, 0, s.ModalCount())
}
