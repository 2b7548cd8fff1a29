package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/matryer/way"
	log "github.com/sirupsen/logrus"
	"github.com/zucenko/herogrid/server"
)

type Server struct {
	router     *way.Router
	GameServer *server.GameServer
}

func main() {
	def := server.DefaultConfig()
	port := flag.String("port", getenv("PORT", def.Port), "listen port")
	turn := flag.Int("turn-seconds", getenvInt("HEROGRID_TURN_SECONDS", int(def.TurnTime/time.Second)), "seconds per turn before it is forfeited")
	codeLen := flag.Int("code-length", getenvInt("HEROGRID_CODE_LENGTH", def.CodeLength), "room code length")
	level := flag.String("log-level", getenv("HEROGRID_LOG_LEVEL", "info"), "log level")
	flag.Parse()

	lvl, err := log.ParseLevel(*level)
	if err != nil {
		log.Fatalf("log level: %v", err)
	}
	log.SetLevel(lvl)

	cfg := def
	cfg.Port = *port
	cfg.TurnTime = time.Duration(*turn) * time.Second
	cfg.CodeLength = *codeLen

	s := Server{
		GameServer: server.NewGameServer(cfg),
	}
	s.routes()

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           s.router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	go func() {
		<-ctx.Done()
		log.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		s.GameServer.Close()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Warnf("shutdown: %v", err)
		}
	}()

	log.WithFields(log.Fields{"port": cfg.Port, "turn": cfg.TurnTime}).Info("HTTP listening")
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatalln(err)
	}
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			log.Warnf("%s=%q is not a number, using %d", key, v, def)
			return def
		}
		return n
	}
	return def
}
