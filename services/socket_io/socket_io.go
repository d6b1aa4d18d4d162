package socket_io

import (
	"os"
	"os/signal"
	"syscall"
	"time"

	"Mafia/services/socket_io/handlers"
	socketio_types "Mafia/services/socket_io/types"
	"Mafia/utils/logger"

	"github.com/gin-gonic/gin"
	"github.com/zishang520/engine.io/v2/log"
	"github.com/zishang520/engine.io/v2/types"
	"github.com/zishang520/socket.io/v2/socket"
)

type MySocketServer socketio_types.SocketServer

// Start mounts the socket.io endpoint on router and wires every client
// event to its handler. onShutdown runs after the server is closed by a
// termination signal.
func (sio *MySocketServer) Start(router *gin.Engine, onShutdown func()) {
	log.DEBUG = sio.Settings.Debug
	c := socket.DefaultServerOptions()
	c.SetServeClient(true)
	// NOTE: higher ping interval and timeout to 1) reduce network load and 2) support slower networks
	c.SetPingInterval(5 * time.Second)
	c.SetPingTimeout(3 * time.Second)
	c.SetMaxHttpBufferSize(1000000)
	c.SetConnectTimeout(10 * time.Second)
	c.SetTransports(types.NewSet("polling", "websocket"))
	c.SetCors(&types.Cors{
		Origin:      "*",
		Credentials: true,
	})

	server := (*socketio_types.SocketServer)(sio)

	sio.Sio_server = socket.NewServer(nil, nil)
	sio.Sio_server.On("connection", func(clients ...interface{}) {
		client := clients[0].(*socket.Socket)
		logger.Debugf("[IO] Socket %s connected", client.Id())

		// Identity and matchmaking
		client.On("getNewPlayerID", handlers.HandleGetNewPlayerID(server, client))
		client.On("findRoom", handlers.HandleFindRoom(server, client))
		client.On("newRoom", handlers.HandleNewRoom(server, client))

		// Binds the socket to a (room, player) pair, every event below needs it
		client.On("ackRoom", handlers.HandleAckRoom(server, client))

		client.On("startGame", handlers.HandleStartGame(server, client))
		client.On("playerVote", handlers.HandlePlayerVote(server, client))
		client.On("playerChoice", handlers.HandlePlayerChoice(server, client))
		client.On("chatMessage", handlers.HandleChatMessage(server, client))
		client.On("leaveGame", handlers.HandleLeaveGame(server, client))

		// NOTE: will remove the session and release the player
		client.On("disconnecting", handlers.HandleDisconnecting(server, client))
	})

	handler := sio.Sio_server.ServeHandler(c)
	serve := func(ctx *gin.Context) {
		// The handshake is the only request without a session id.
		if sio.Settings.Debug && ctx.Query("sid") == "" {
			logger.Infof("[IO] Connection from client %s", ctx.ClientIP())
		}
		handler.ServeHTTP(ctx.Writer, ctx.Request)
	}
	router.POST("/socket.io/*f", serve)
	router.GET("/socket.io/*f", serve)

	SignalC := make(chan os.Signal, 1)

	signal.Notify(SignalC, syscall.SIGHUP, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)
	go func() {
		for s := range SignalC {
			switch s {
			case syscall.SIGHUP, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT:
				logger.Infof("[IO] Received %s, shutting down", s)
				sio.Close()
				if onShutdown != nil {
					onShutdown()
				}
				os.Exit(0)
			}
		}
	}()

	logger.Info("Socket server started")
}

// Close destroys every room and closes the socket.io server.
func (sio *MySocketServer) Close() {
	if sio.Registry != nil {
		sio.Registry.Shutdown()
	}
	if sio.Sio_server != nil {
		sio.Sio_server.Close(nil)
	}
}
