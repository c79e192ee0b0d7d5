package keypad

import (
	"context"
	"errors"
	"log/slog"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"

	"keypadCalc/internal/domain"
	"keypadCalc/internal/ports"
)

// ServiceName — полное имя gRPC-сервиса (используется и в health).
const ServiceName = "keypad.v1.KeypadService"

// KeypadServiceServer — серверная сторона keypad.v1.KeypadService.
// Сообщения передаются как google.protobuf.Struct:
//
//	OpenSession  {}                      -> {id, display, clear_label}
//	GetSession   {id}                    -> {id, display, clear_label}
//	Press        {id, keys: ["1", "+"]}  -> {id, display, clear_label}
//	CloseSession {id}                    -> {}
type KeypadServiceServer interface {
	OpenSession(context.Context, *structpb.Struct) (*structpb.Struct, error)
	GetSession(context.Context, *structpb.Struct) (*structpb.Struct, error)
	Press(context.Context, *structpb.Struct) (*structpb.Struct, error)
	CloseSession(context.Context, *structpb.Struct) (*structpb.Struct, error)
}

// Register регистрирует реализацию на gRPC-сервере.
func Register(s grpc.ServiceRegistrar, srv KeypadServiceServer) {
	s.RegisterService(&ServiceDesc, srv)
}

// ServiceDesc описывает keypad.v1.KeypadService без сгенерированного кода.
var ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*KeypadServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "OpenSession", Handler: unaryHandler("OpenSession", KeypadServiceServer.OpenSession)},
		{MethodName: "GetSession", Handler: unaryHandler("GetSession", KeypadServiceServer.GetSession)},
		{MethodName: "Press", Handler: unaryHandler("Press", KeypadServiceServer.Press)},
		{MethodName: "CloseSession", Handler: unaryHandler("CloseSession", KeypadServiceServer.CloseSession)},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "keypad/v1/keypad.proto",
}

type structMethod func(KeypadServiceServer, context.Context, *structpb.Struct) (*structpb.Struct, error)

func unaryHandler(name string, call structMethod) func(any, context.Context, func(any) error, grpc.UnaryServerInterceptor) (any, error) {
	fullMethod := "/" + ServiceName + "/" + name
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := new(structpb.Struct)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(KeypadServiceServer), ctx, in)
		}
		info := &grpc.UnaryServerInfo{Server: srv, FullMethod: fullMethod}
		handler := func(ctx context.Context, req any) (any, error) {
			return call(srv.(KeypadServiceServer), ctx, req.(*structpb.Struct))
		}
		return interceptor(ctx, in, info, handler)
	}
}

// Server реализует KeypadServiceServer поверх use case калькулятора.
type Server struct {
	uc  ports.IKeypadUseCase
	log *slog.Logger
}

var _ KeypadServiceServer = (*Server)(nil)

// New создаёт gRPC-сервер калькулятора.
func New(uc ports.IKeypadUseCase, log *slog.Logger) *Server {
	if log == nil {
		log = slog.Default()
	}
	return &Server{uc: uc, log: log}
}

// OpenSession открывает новую сессию.
func (s *Server) OpenSession(ctx context.Context, _ *structpb.Struct) (*structpb.Struct, error) {
	sess, err := s.uc.Open(ctx)
	if err != nil {
		return nil, s.toStatus("open session", err)
	}
	return sessionStruct(sess)
}

// GetSession возвращает состояние сессии.
func (s *Server) GetSession(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	id, err := requireID(req)
	if err != nil {
		return nil, err
	}
	sess, err := s.uc.Session(ctx, id)
	if err != nil {
		return nil, s.toStatus("get session", err)
	}
	return sessionStruct(sess)
}

// Press применяет нажатия клавиш.
func (s *Server) Press(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	id, err := requireID(req)
	if err != nil {
		return nil, err
	}

	raw := req.GetFields()["keys"].GetListValue().GetValues()
	if len(raw) == 0 {
		return nil, status.Error(codes.InvalidArgument, "keys are required")
	}
	labels := make([]string, len(raw))
	for i, v := range raw {
		labels[i] = v.GetStringValue()
	}
	keys, err := domain.ParseKeys(labels)
	if err != nil {
		return nil, status.Errorf(codes.InvalidArgument, "%v", err)
	}

	sess, err := s.uc.Press(ctx, id, keys...)
	if err != nil {
		return nil, s.toStatus("press", err)
	}
	return sessionStruct(sess)
}

// CloseSession удаляет сессию.
func (s *Server) CloseSession(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	id, err := requireID(req)
	if err != nil {
		return nil, err
	}
	if err := s.uc.Close(ctx, id); err != nil {
		return nil, s.toStatus("close session", err)
	}
	return &structpb.Struct{}, nil
}

func (s *Server) toStatus(op string, err error) error {
	switch {
	case errors.Is(err, domain.ErrSessionNotFound):
		return status.Errorf(codes.NotFound, "%v", err)
	case errors.Is(err, domain.ErrUnknownKey):
		return status.Errorf(codes.InvalidArgument, "%v", err)
	}
	s.log.Error(op+" failed", "error", err)
	return status.Errorf(codes.Internal, "%v", err)
}

func requireID(req *structpb.Struct) (string, error) {
	id := req.GetFields()["id"].GetStringValue()
	if id == "" {
		return "", status.Error(codes.InvalidArgument, "id is required")
	}
	return id, nil
}

func sessionStruct(sess *domain.Session) (*structpb.Struct, error) {
	out, err := structpb.NewStruct(map[string]any{
		"id":          sess.ID,
		"display":     sess.State.Display,
		"clear_label": sess.State.ClearLabel(),
	})
	if err != nil {
		return nil, status.Errorf(codes.Internal, "encode session: %v", err)
	}
	return out, nil
}
