package stdhost

import "net"

func netDial(addr, port string) (net.Conn, error) {
	return net.Dial("tcp", net.JoinHostPort(addr, port))
}
