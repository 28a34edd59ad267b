package out

import (
	"context"
	"fmt"
	"net"
	"net/rpc"
	"net/rpc/jsonrpc"
	"os"
	"path/filepath"
	"time"

	commanddto "sprintbell/internal/modules/command/dto"
	"sprintbell/internal/modules/daemon/dto"
	daemonout "sprintbell/internal/modules/daemon/port/out"
	subgoaldto "sprintbell/internal/modules/subgoal/dto"
	timerdto "sprintbell/internal/modules/timer/dto"
	apperrors "sprintbell/internal/platform/errors"
)

const (
	rpcService  = "Daemon"
	callTimeout = 10 * time.Second
)

type JSONRPCServer struct{}

type JSONRPCClient struct{}

func NewJSONRPCServer() daemonout.IPCServer {
	return &JSONRPCServer{}
}

func NewJSONRPCClient() daemonout.IPCClient {
	return &JSONRPCClient{}
}

type rpcHandler struct {
	h daemonout.IPCHandler
}

type openReq struct {
	URL string
}

type empty struct{}

func (s *rpcHandler) Open(req openReq, resp *commanddto.Result) error {
	result, err := s.h.Open(context.Background(), req.URL)
	if err != nil {
		return err
	}
	*resp = result
	return nil
}

func (s *rpcHandler) Status(_ empty, resp *dto.StatusOutput) error {
	status, err := s.h.Status(context.Background())
	if err != nil {
		return err
	}
	*resp = status
	return nil
}

func (s *rpcHandler) Timer(req dto.TimerRequest, resp *timerdto.StateOutput) error {
	state, err := s.h.Timer(context.Background(), req)
	if err != nil {
		return err
	}
	*resp = state
	return nil
}

func (s *rpcHandler) Goals(req dto.GoalsRequest, resp *subgoaldto.ListOutput) error {
	list, err := s.h.Goals(context.Background(), req)
	if err != nil {
		return err
	}
	*resp = list
	return nil
}

func (s *rpcHandler) Stop(_ empty, _ *empty) error {
	return s.h.Stop(context.Background())
}

func (s *JSONRPCServer) Serve(ctx context.Context, socketPath string, handler daemonout.IPCHandler) error {
	if err := os.MkdirAll(filepath.Dir(socketPath), 0o755); err != nil {
		return fmt.Errorf("create ipc dir: %w", err)
	}
	if err := os.Remove(socketPath); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove stale ipc socket: %w", err)
	}
	ln, err := net.Listen("unix", socketPath)
	if err != nil {
		return fmt.Errorf("listen ipc socket: %w", err)
	}
	if err := os.Chmod(socketPath, 0o600); err != nil {
		_ = ln.Close()
		return fmt.Errorf("chmod ipc socket: %w", err)
	}
	defer ln.Close()

	rpcSrv := rpc.NewServer()
	if err := rpcSrv.RegisterName(rpcService, &rpcHandler{h: handler}); err != nil {
		return fmt.Errorf("register ipc handler: %w", err)
	}

	stop := make(chan struct{})
	go func() {
		select {
		case <-ctx.Done():
			_ = ln.Close()
		case <-stop:
		}
	}()
	defer close(stop)

	for {
		conn, err := ln.Accept()
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			if ne, ok := err.(net.Error); ok && ne.Timeout() {
				continue
			}
			return err
		}
		go rpcSrv.ServeCodec(jsonrpc.NewServerCodec(conn))
	}
}

func (c *JSONRPCClient) Open(ctx context.Context, socketPath, rawURL string) (commanddto.Result, error) {
	resp := commanddto.Result{}
	if err := call(ctx, socketPath, "Open", openReq{URL: rawURL}, &resp); err != nil {
		return commanddto.Result{}, err
	}
	return resp, nil
}

func (c *JSONRPCClient) Status(ctx context.Context, socketPath string) (dto.StatusOutput, error) {
	resp := dto.StatusOutput{}
	if err := call(ctx, socketPath, "Status", empty{}, &resp); err != nil {
		return dto.StatusOutput{}, err
	}
	return resp, nil
}

func (c *JSONRPCClient) Timer(ctx context.Context, socketPath string, req dto.TimerRequest) (timerdto.StateOutput, error) {
	resp := timerdto.StateOutput{}
	if err := call(ctx, socketPath, "Timer", req, &resp); err != nil {
		return timerdto.StateOutput{}, err
	}
	return resp, nil
}

func (c *JSONRPCClient) Goals(ctx context.Context, socketPath string, req dto.GoalsRequest) (subgoaldto.ListOutput, error) {
	resp := subgoaldto.ListOutput{}
	if err := call(ctx, socketPath, "Goals", req, &resp); err != nil {
		return subgoaldto.ListOutput{}, err
	}
	return resp, nil
}

func (c *JSONRPCClient) Stop(ctx context.Context, socketPath string) error {
	return call(ctx, socketPath, "Stop", empty{}, &empty{})
}

func call(ctx context.Context, socketPath, method string, args, reply any) error {
	client, err := dialClient(ctx, socketPath)
	if err != nil {
		return err
	}
	defer client.Close()
	if err := client.Call(rpcService+"."+method, args, reply); err != nil {
		return fmt.Errorf("daemon %s: %w", method, err)
	}
	return nil
}

func dialClient(ctx context.Context, socketPath string) (*rpc.Client, error) {
	d := net.Dialer{}
	conn, err := d.DialContext(ctx, "unix", socketPath)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrDaemonNotRunning, err)
	}
	_ = conn.SetDeadline(time.Now().Add(callTimeout))
	return rpc.NewClientWithCodec(jsonrpc.NewClientCodec(conn)), nil
}
