package rpc

import (
	"net"
	"net/rpc"

	"github.com/minepair/gameserver/logger"
	"github.com/minepair/gameserver/room"
	"github.com/minepair/gameserver/services"
)

// Server manages the RPC listener.
type Server struct {
	listener net.Listener
	address  string
}

// NewServer creates a new RPC server.
func NewServer(addr string) (*Server, error) {
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, err
	}
	return &Server{
		listener: listener,
		address:  addr,
	}, nil
}

// Start begins listening for RPC requests.
func (s *Server) Start() {
	logger.Log.Infof("RPC server listening on %s", s.address)
	for {
		conn, err := s.listener.Accept()
		if err != nil {
			// Check if the error is due to the listener being closed.
			if _, ok := err.(*net.OpError); ok {
				logger.Log.Info("RPC server listener closed.")
				return
			}
			logger.Log.Errorf("RPC server accept error: %v", err)
			continue
		}
		go rpc.ServeConn(conn)
	}
}

// Stop closes the RPC listener.
func (s *Server) Stop() {
	if s.listener != nil {
		logger.Log.Info("Stopping RPC server.")
		s.listener.Close()
	}
}

// AdminService exposes operational queries over net/rpc: live room codes
// and the archived match statistics.
type AdminService struct {
	roomManager  *room.Manager
	matchService *services.MatchService
}

func NewAdminService(roomManager *room.Manager, matchService *services.MatchService) *AdminService {
	return &AdminService{roomManager: roomManager, matchService: matchService}
}

type ListRoomsArgs struct{}

type ListRoomsReply struct {
	Codes []string
}

func (as *AdminService) ListActiveRooms(args *ListRoomsArgs, reply *ListRoomsReply) error {
	reply.Codes = as.roomManager.ActiveCodes()
	return nil
}

type MatchStatsArgs struct{}

type MatchStatsReply struct {
	Stats map[string]interface{}
}

func (as *AdminService) GetMatchStats(args *MatchStatsArgs, reply *MatchStatsReply) error {
	stats, err := as.matchService.StatsWithWinRate()
	if err != nil {
		return err
	}
	reply.Stats = stats
	return nil
}
