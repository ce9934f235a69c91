package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"net"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/rediswire/rediswire"
	"github.com/rediswire/rediswire/resp"
)

func main() {
	addr := flag.String("addr", "localhost:6379", "server address")
	timeout := flag.Duration("timeout", 5*time.Second, "per-command timeout")
	flag.Parse()

	conn, err := dial(*addr, *timeout)
	if err != nil {
		fmt.Printf("Failed to connect to %s: %v\n", *addr, err)
		os.Exit(1)
	}
	defer conn.Close()

	fmt.Printf("Connected to %s\n", *addr)
	fmt.Println("Commands: get <key>, set <key> <value> [ttl], del <key> ..., incr <key> <delta>, expire <key> <ttl>, ping, quit")
	fmt.Println()

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			break
		}

		parts := strings.Fields(strings.TrimSpace(scanner.Text()))
		if len(parts) == 0 {
			continue
		}

		ctx := context.Background()
		switch strings.ToLower(parts[0]) {
		case "get":
			if len(parts) != 2 {
				fmt.Println("Usage: get <key>")
				continue
			}
			report(conn.Get(ctx, parts[1]))

		case "set":
			if len(parts) < 3 || len(parts) > 4 {
				fmt.Println("Usage: set <key> <value> [ttl_seconds]")
				continue
			}
			if len(parts) == 4 {
				ttlSecs, err := strconv.Atoi(parts[3])
				if err != nil {
					fmt.Printf("Invalid TTL: %v\n", err)
					continue
				}
				report(conn.SetEx(ctx, parts[1], parts[2], time.Duration(ttlSecs)*time.Second))
			} else {
				report(conn.Set(ctx, parts[1], parts[2]))
			}

		case "del", "delete":
			if len(parts) < 2 {
				fmt.Println("Usage: del <key> ...")
				continue
			}
			report(conn.Del(ctx, parts[1:]...))

		case "incr":
			if len(parts) != 3 {
				fmt.Println("Usage: incr <key> <delta>")
				continue
			}
			delta, err := strconv.ParseInt(parts[2], 10, 64)
			if err != nil {
				fmt.Printf("Invalid delta: %v\n", err)
				continue
			}
			report(conn.IncrBy(ctx, parts[1], delta))

		case "expire":
			if len(parts) != 3 {
				fmt.Println("Usage: expire <key> <ttl_seconds>")
				continue
			}
			ttlSecs, err := strconv.Atoi(parts[2])
			if err != nil {
				fmt.Printf("Invalid TTL: %v\n", err)
				continue
			}
			report(conn.Expire(ctx, parts[1], time.Duration(ttlSecs)*time.Second))

		case "ping":
			report(conn.Ping(ctx))

		case "quit", "exit":
			return

		default:
			fmt.Printf("Unknown command: %s\n", parts[0])
		}
	}

	if err := scanner.Err(); err != nil {
		fmt.Printf("Error reading input: %v\n", err)
	}
}

func dial(addr string, timeout time.Duration) (*rediswire.Conn[string, string], error) {
	tcp, err := net.Dial("tcp", addr)
	if err != nil {
		return nil, err
	}
	handler := rediswire.NewChannelHandler(rediswire.NewPipelineWriter(tcp), timeout)
	return rediswire.Wrap(handler, resp.StringCodec{}), nil
}

func report(cmd *resp.Command, err error) {
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}
	fmt.Printf("Sent %s\n", cmd.Type())
}
