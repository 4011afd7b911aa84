// Command girderd runs a small line-oriented demo server on the girder
// socket core. Each line is a command:
//
//	SEAL <text>   seal the text under the session key, reply base64
//	OPEN <value>  open a base64 blob, reply with the payload
//
// Configuration comes from the environment (a .env file is honored):
//
//	GIRDERD_ADDR         listen address (default :8080)
//	GIRDERD_SESSION_KEY  base64url 32-byte key; generated if unset
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/fatih/color"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"github.com/girderhttp/girder"
	"github.com/girderhttp/girder/secretbox"
)

func main() {
	// A .env file is optional; deployments set the environment directly.
	godotenv.Load()

	addr := os.Getenv("GIRDERD_ADDR")
	if addr == "" {
		addr = ":8080"
	}

	key, err := sessionKey()
	if err != nil {
		fatal("session key: %v", err)
	}

	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	srv := girder.NewServer(handler(key), girder.WithLogger(logger))

	fmt.Println(color.CyanString("girderd listening on %s", addr))

	errc := make(chan error, 1)
	go func() {
		errc <- srv.ListenAndServe(addr)
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errc:
		if err != nil {
			fatal("serve: %v", err)
		}
	case <-stop:
		fmt.Println(color.YellowString("shutting down"))
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			fatal("shutdown: %v", err)
		}
	}
}

// sessionKey loads the cookie key from the environment, generating and
// printing a fresh one when none is configured.
func sessionKey() ([]byte, error) {
	if encoded := os.Getenv("GIRDERD_SESSION_KEY"); encoded != "" {
		return secretbox.ParseKey(encoded)
	}

	key, err := secretbox.GenerateKey()
	if err != nil {
		return nil, err
	}
	fmt.Println(color.YellowString("GIRDERD_SESSION_KEY not set; generated %s", secretbox.EncodeValue(key)))
	return key, nil
}

func handler(key []byte) girder.Handler {
	return func(conn *girder.Conn) {
		for {
			seg, err := conn.Receive(1)
			if err != nil || seg.Len() == 0 {
				return
			}
			reply := process(key, strings.TrimSpace(string(seg.Bytes())))
			if err := send(conn, reply+"\n"); err != nil {
				return
			}
		}
	}
}

func process(key []byte, line string) string {
	cmd, arg, _ := strings.Cut(line, " ")
	switch cmd {
	case "SEAL":
		blob, err := secretbox.SealString(key, arg)
		if err != nil {
			return "ERR " + err.Error()
		}
		return "OK " + secretbox.EncodeValue(blob)
	case "OPEN":
		blob, err := secretbox.DecodeValue(arg)
		if err != nil {
			return "ERR " + err.Error()
		}
		payload, err := secretbox.OpenString(key, blob)
		if err != nil {
			return "ERR " + err.Error()
		}
		return "OK " + payload
	default:
		return "ERR unknown command"
	}
}

func send(conn *girder.Conn, s string) error {
	pool := conn.Pool()
	buf, err := pool.Acquire()
	if err != nil {
		return err
	}
	defer pool.Release(buf)

	if len(s) > buf.Cap() {
		s = s[:buf.Cap()]
	}
	seg, err := buf.Segment(0, len(s))
	if err != nil {
		return err
	}
	copy(seg.Bytes(), s)
	_, err = conn.Send(seg)
	return err
}

func fatal(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "girderd: "+format+"\n", args...)
	os.Exit(1)
}
