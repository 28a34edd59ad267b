package rpc_test

import (
	"context"
	"net"
	"testing"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"

	"sprintbell/internal/modules/effects/adapter/out/rpc"
)

type recordingServer struct {
	got chan *rpc.NotifyRequest
}

func (s *recordingServer) GetMetadata(context.Context, *rpc.Empty) (*rpc.Metadata, error) {
	return &rpc.Metadata{Name: "recording", Version: "0.0.1", Platforms: []string{"linux"}}, nil
}

func (s *recordingServer) Notify(_ context.Context, in *rpc.NotifyRequest) (*rpc.NotifyResponse, error) {
	s.got <- in
	return &rpc.NotifyResponse{Delivered: true, Detail: "recorded"}, nil
}

func TestNotifierContractOverJSONCodec(t *testing.T) {
	t.Parallel()
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	server := grpc.NewServer()
	impl := &recordingServer{got: make(chan *rpc.NotifyRequest, 1)}
	rpc.RegisterNotifierServer(server, impl)
	go func() { _ = server.Serve(listener) }()
	t.Cleanup(server.Stop)

	conn, err := grpc.NewClient(listener.Addr().String(), grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	t.Cleanup(func() { _ = conn.Close() })
	client := rpc.NewNotifierClient(conn)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	meta, err := client.GetMetadata(ctx)
	if err != nil {
		t.Fatalf("get metadata: %v", err)
	}
	if meta.Name != "recording" || len(meta.Platforms) != 1 {
		t.Fatalf("unexpected metadata: %+v", meta)
	}

	resp, err := client.Notify(ctx, &rpc.NotifyRequest{
		Title:   "🎯 Focus Session Complete!",
		Body:    "Deep Work • 25:00 • Session completed",
		Actions: []rpc.Action{{ID: "VIEW_STATS", Title: "View Stats"}},
		Sound:   true,
	})
	if err != nil {
		t.Fatalf("notify: %v", err)
	}
	if !resp.Delivered || resp.Detail != "recorded" {
		t.Fatalf("unexpected response: %+v", resp)
	}
	got := <-impl.got
	if got.Body != "Deep Work • 25:00 • Session completed" || len(got.Actions) != 1 || !got.Sound {
		t.Fatalf("server received %+v", got)
	}
}
