package server

import (
	"context"
	"net"
	"testing"
	"time"

	"go.uber.org/goleak"
	"go.uber.org/zap/zaptest"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/peer"
	"google.golang.org/grpc/status"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestLoggingInterceptor(t *testing.T) {
	logger := zaptest.NewLogger(t)

	interceptor := LoggingInterceptor(logger)

	successHandler := func(ctx context.Context, req any) (any, error) {
		return "success", nil
	}

	info := &grpc.UnaryServerInfo{
		FullMethod: "/airsat.v1.SatisfactionPredictor/Predict",
	}

	// Test successful request
	t.Run("successful request", func(t *testing.T) {
		ctx := peer.NewContext(context.Background(), &peer.Peer{
			Addr: &net.TCPAddr{IP: net.IPv4(127, 0, 0, 1), Port: 40000},
		})

		resp, err := interceptor(ctx, "test request", info, successHandler)
		if err != nil {
			t.Errorf("Expected no error, got %v", err)
		}
		if resp != "success" {
			t.Errorf("Expected 'success', got %v", resp)
		}
	})

	// Test error requests, both a caller mistake and a server failure
	for _, code := range []codes.Code{codes.InvalidArgument, codes.Internal} {
		t.Run("error "+code.String(), func(t *testing.T) {
			errorHandler := func(ctx context.Context, req any) (any, error) {
				return nil, status.Error(code, "test error")
			}

			_, err := interceptor(context.Background(), "test request", info, errorHandler)
			if err == nil {
				t.Fatal("Expected an error, got nil")
			}

			st, ok := status.FromError(err)
			if !ok {
				t.Error("Expected gRPC status error")
			}
			if st.Code() != code {
				t.Errorf("Expected %v, got %v", code, st.Code())
			}
		})
	}
}

func TestClientAddr(t *testing.T) {
	if got := clientAddr(context.Background()); got != "unknown" {
		t.Errorf("Expected 'unknown', got %q", got)
	}
}

func TestRecoveryInterceptor(t *testing.T) {
	interceptor := RecoveryInterceptor(zaptest.NewLogger(t))
	info := &grpc.UnaryServerInfo{FullMethod: "/airsat.v1.SatisfactionPredictor/Predict"}

	resp, err := interceptor(context.Background(), nil, info, func(ctx context.Context, req any) (any, error) {
		panic("boom")
	})

	if resp != nil {
		t.Errorf("Expected nil response, got %v", resp)
	}
	if status.Code(err) != codes.Internal {
		t.Errorf("Expected Internal, got %v", status.Code(err))
	}
}

func TestNewRejectsInvalidPort(t *testing.T) {
	if _, err := New(WithPort(70000)); err == nil {
		t.Error("Expected an error for port 70000")
	}
}

func TestServerBuilderWithLogging(t *testing.T) {
	logger := zaptest.NewLogger(t)

	// Port 0 avoids clashing with a running instance.
	server, err := New(
		WithHost("127.0.0.1"),
		WithPort(0),
		WithLogger(logger),
		WithLogging(true),
	)
	if err != nil {
		t.Fatalf("Failed to create server: %v", err)
	}

	server.RegisterServiceWithHealth("airsat.v1.SatisfactionPredictor", func(s *grpc.Server) {})

	// Verify server was created successfully
	if server.grpcServer == nil {
		t.Error("gRPC server should not be nil")
	}
	if server.healthServer == nil {
		t.Error("Health server should not be nil")
	}
	if got := server.Services(); len(got) != 1 || got[0] != "airsat.v1.SatisfactionPredictor" {
		t.Errorf("Unexpected registered services: %v", got)
	}

	errCh := server.Start()

	conn, err := grpc.NewClient(server.Addr().String(), grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		t.Fatalf("Failed to dial server: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	healthClient := healthpb.NewHealthClient(conn)
	for _, name := range []string{"", "airsat.v1.SatisfactionPredictor"} {
		resp, err := healthClient.Check(ctx, &healthpb.HealthCheckRequest{Service: name}, grpc.WaitForReady(true))
		if err != nil {
			t.Fatalf("Health check for %q failed: %v", name, err)
		}
		if resp.Status != healthpb.HealthCheckResponse_SERVING {
			t.Errorf("Expected SERVING status for %q, got %v", name, resp.Status)
		}
	}

	server.SetServiceHealth("airsat.v1.SatisfactionPredictor", healthpb.HealthCheckResponse_NOT_SERVING)
	resp, err := healthClient.Check(ctx, &healthpb.HealthCheckRequest{Service: "airsat.v1.SatisfactionPredictor"})
	if err != nil {
		t.Fatalf("Health check after drain failed: %v", err)
	}
	if resp.Status != healthpb.HealthCheckResponse_NOT_SERVING {
		t.Errorf("Expected NOT_SERVING after SetServiceHealth, got %v", resp.Status)
	}

	if err := conn.Close(); err != nil {
		t.Errorf("Client close error: %v", err)
	}
	if err := server.Shutdown(ctx); err != nil {
		t.Errorf("Server shutdown error: %v", err)
	}
	if err, ok := <-errCh; ok && err != nil {
		t.Errorf("Serve returned error: %v", err)
	}
}

func TestShutdownWithoutStartReleasesListener(t *testing.T) {
	server, err := New(WithHost("127.0.0.1"), WithPort(0), WithLogger(zaptest.NewLogger(t)))
	if err != nil {
		t.Fatalf("Failed to create server: %v", err)
	}
	addr := server.Addr().String()

	if err := server.Shutdown(context.Background()); err != nil {
		t.Fatalf("Shutdown of an unstarted server failed: %v", err)
	}

	lis, err := net.Listen("tcp", addr)
	if err != nil {
		t.Fatalf("Address %s still held after Shutdown: %v", addr, err)
	}
	lis.Close()
}
