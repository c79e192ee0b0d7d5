package keypad

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"
	"google.golang.org/protobuf/types/known/structpb"

	"keypadCalc/internal/domain"
	"keypadCalc/internal/mocks"
)

// dial поднимает сервис на bufconn и возвращает клиентское соединение.
func dial(t *testing.T, uc *mocks.MockIKeypadUseCase) *grpc.ClientConn {
	t.Helper()

	lis := bufconn.Listen(1 << 20)
	s := grpc.NewServer()
	Register(s, New(uc, slog.New(slog.NewTextHandler(io.Discard, nil))))
	go func() { _ = s.Serve(lis) }()
	t.Cleanup(s.Stop)

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) { return lis.DialContext(ctx) }),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	return conn
}

func call(conn *grpc.ClientConn, method string, in map[string]any) (*structpb.Struct, error) {
	req, err := structpb.NewStruct(in)
	if err != nil {
		return nil, err
	}
	out := new(structpb.Struct)
	err = conn.Invoke(context.Background(), "/"+ServiceName+"/"+method, req, out)
	return out, err
}

func TestOpenSession(t *testing.T) {
	uc := mocks.NewMockIKeypadUseCase(gomock.NewController(t))
	uc.EXPECT().Open(gomock.Any()).Return(&domain.Session{ID: "s1", State: domain.NewState()}, nil)

	out, err := call(dial(t, uc), "OpenSession", nil)

	require.NoError(t, err)
	assert.Equal(t, map[string]any{"id": "s1", "display": "0", "clear_label": "AC"}, out.AsMap())
}

func TestPress(t *testing.T) {
	uc := mocks.NewMockIKeypadUseCase(gomock.NewController(t))
	uc.EXPECT().
		Press(gomock.Any(), "s1", domain.DigitKey('9'), domain.PercentKey).
		Return(&domain.Session{ID: "s1", State: domain.State{Display: "0,09"}}, nil)

	out, err := call(dial(t, uc), "Press", map[string]any{"id": "s1", "keys": []any{"9", "%"}})

	require.NoError(t, err)
	assert.Equal(t, "0,09", out.GetFields()["display"].GetStringValue())
	assert.Equal(t, "C", out.GetFields()["clear_label"].GetStringValue())
}

func TestPress_InvalidArgument(t *testing.T) {
	tests := []struct {
		name string
		in   map[string]any
	}{
		{name: "no id", in: map[string]any{"keys": []any{"1"}}},
		{name: "no keys", in: map[string]any{"id": "s1"}},
		{name: "unknown key", in: map[string]any{"id": "s1", "keys": []any{"1", "sqrt"}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := mocks.NewMockIKeypadUseCase(gomock.NewController(t))

			_, err := call(dial(t, uc), "Press", tt.in)

			assert.Equal(t, codes.InvalidArgument, status.Code(err))
		})
	}
}

func TestGetSession_NotFound(t *testing.T) {
	uc := mocks.NewMockIKeypadUseCase(gomock.NewController(t))
	uc.EXPECT().Session(gomock.Any(), "s1").Return(nil, domain.ErrSessionNotFound)

	_, err := call(dial(t, uc), "GetSession", map[string]any{"id": "s1"})

	assert.Equal(t, codes.NotFound, status.Code(err))
}

func TestCloseSession(t *testing.T) {
	uc := mocks.NewMockIKeypadUseCase(gomock.NewController(t))
	uc.EXPECT().Close(gomock.Any(), "s1").Return(nil)

	out, err := call(dial(t, uc), "CloseSession", map[string]any{"id": "s1"})

	require.NoError(t, err)
	assert.Empty(t, out.GetFields())
}

func TestCloseSession_Internal(t *testing.T) {
	uc := mocks.NewMockIKeypadUseCase(gomock.NewController(t))
	uc.EXPECT().Close(gomock.Any(), "s1").Return(errors.New("mongo down"))

	_, err := call(dial(t, uc), "CloseSession", map[string]any{"id": "s1"})

	assert.Equal(t, codes.Internal, status.Code(err))
}
