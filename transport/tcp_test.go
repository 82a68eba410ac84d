package transport

import (
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestTCPRoundTrip(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer ln.Close()

	srvConn := make(chan net.Conn, 1)
	go func() {
		c, err := ln.Accept()
		if err == nil {
			srvConn <- c
		}
	}()

	client, err := DialTCP(ln.Addr().String())
	require.NoError(t, err)
	defer client.Close()

	var srv net.Conn
	select {
	case srv = <-srvConn:
	case <-time.After(time.Second):
		t.Fatal("server never accepted")
	}
	defer srv.Close()

	require.NoError(t, client.WriteMessage([]byte(`1 kgp 1 0 0`)))

	buf := make([]byte, 64)
	n, err := srv.Read(buf)
	require.NoError(t, err)
	require.Equal(t, "1 kgp 1 0 0\r\n", string(buf[:n]))

	_, err = srv.Write([]byte("1 ok\r\n"))
	require.NoError(t, err)

	line, err := client.ReadLine()
	require.NoError(t, err)
	require.Equal(t, "1 ok", line)
}
