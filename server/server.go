package server

import (
	"net/http"
	"net/rpc"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/minepair/gameserver/broadcast"
	"github.com/minepair/gameserver/logger"
	"github.com/minepair/gameserver/monitor"
	"github.com/minepair/gameserver/network"
	"github.com/minepair/gameserver/persistence"
	"github.com/minepair/gameserver/room"
	gameserver_rpc "github.com/minepair/gameserver/rpc"
	"github.com/minepair/gameserver/services"
	"github.com/minepair/gameserver/session"
	"github.com/minepair/gameserver/timer"
)

type GameServer struct {
	addr           string
	metricsAddr    string
	upgrader       websocket.Upgrader
	roomManager    *room.Manager
	sessionManager *session.Manager
	broadcaster    broadcast.Broadcaster
	matchService   *services.MatchService
	monitor        *monitor.Monitor
	timerManager   *timer.Manager
	rpcServer      *gameserver_rpc.Server
	shutdownChan   chan struct{}
}

func NewGameServer(addr, rpcAddr, metricsAddr string, db persistence.Database) *GameServer {
	s := &GameServer{
		addr:           addr,
		metricsAddr:    metricsAddr,
		roomManager:    room.NewManager(),
		sessionManager: session.NewManager(),
		matchService:   services.NewMatchService(db),
		monitor:        monitor.NewMonitor("minepair"),
		timerManager:   timer.NewManager(),
		shutdownChan:   make(chan struct{}),
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return true // allow all origins, the room code is the only gate
			},
		},
	}

	s.broadcaster = broadcast.NewRoomBroadcaster(s.roomManager, s.sessionManager)

	rpcServer, err := gameserver_rpc.NewServer(rpcAddr)
	if err != nil {
		logger.Log.Fatalf("Failed to create RPC server: %v", err)
	}
	s.rpcServer = rpcServer

	adminService := gameserver_rpc.NewAdminService(s.roomManager, s.matchService)
	rpc.Register(adminService)

	return s
}

func (s *GameServer) Start() error {
	go s.rpcServer.Start()

	s.monitor.StartServer(s.metricsAddr)
	s.timerManager.Schedule(5*time.Second, 5*time.Second, func() {
		s.monitor.SetActiveRooms(s.roomManager.RoomCount())
		s.monitor.SetOnlinePlayers(s.sessionManager.Count())
	})

	logger.Log.Infof("Game server listening on %s", s.addr)
	return http.ListenAndServe(s.addr, s.routes())
}

// routes scopes the game endpoints to their own mux; the metrics
// listener must not serve /ws and vice versa.
func (s *GameServer) routes() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.handleWebSocket)
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("ok"))
	})
	return mux
}

func (s *GameServer) Shutdown() {
	close(s.shutdownChan)
	s.rpcServer.Stop()
}

func (s *GameServer) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		logger.Log.Infof("Failed to upgrade connection: %v", err)
		return
	}
	s.handleConnection(conn)
}

func (s *GameServer) handleConnection(conn *websocket.Conn) {
	wsConn := network.NewWSConnection(conn)
	sess := session.NewSession(uuid.New().String(), wsConn)
	s.sessionManager.Add(sess)
	s.monitor.IncOnlinePlayers()

	logger.Log.Infof("New connection from %s, session ID: %s", wsConn.RemoteAddr(), sess.GetID())

	defer func() {
		logger.Log.Infof("Connection closed from %s, session ID: %s", wsConn.RemoteAddr(), sess.GetID())
		s.handleDisconnect(sess)
		wsConn.Close()
	}()

	for {
		select {
		case <-s.shutdownChan:
			return
		default:
			event, err := wsConn.ReadEvent()
			if err != nil {
				return
			}

			start := time.Now()
			s.handleEvent(sess, event)
			s.monitor.IncMessagesReceived()
			s.monitor.ObserveMessageLatency(time.Since(start))
		}
	}
}

func (s *GameServer) handleEvent(sess *session.Session, event *network.Event) {
	switch event.Name {
	case network.EventHostGame:
		s.handleHostGame(sess)
	case network.EventJoinGame:
		s.handleJoinGame(sess, event.Data)
	case network.EventInitGame:
		s.handleInitGame(sess, event.Data)
	case network.EventRevealCell:
		s.handleRevealCell(sess, event.Data)
	case network.EventFlagCell:
		s.handleFlagCell(sess, event.Data)
	case network.EventCursorMove:
		s.handleCursorMove(sess, event.Data)
	case network.EventSendEmote:
		s.handleSendEmote(sess, event.Data)
	default:
		logger.Log.Infof("Unknown event %q from session %s", event.Name, sess.GetID())
	}
}
