// Command sendhttp is an illustrative driver for the iohttp package:
// it connects to a URL (TCP, or TLS for https), sends one GET request,
// follows redirects, and prints the final response's headers and body.
// It is not part of the core engine — drivers are the caller's
// responsibility; this one exists the way the original project ships
// examples/send.rs, as a runnable demonstration of driving the
// suspend/resume machines over a real socket.
package main

import (
	"bufio"
	"crypto/tls"
	"fmt"
	"net"
	"os"
	"strings"

	iohttp "github.com/pimalaya/io-http"
	"github.com/pimalaya/io-http/internal/netio"
	"github.com/pimalaya/io-http/internal/netx"
)

func main() {
	rawURL := os.Getenv("URL")
	if rawURL == "" {
		rawURL = readLine("URL?")
	}

	uri, err := iohttp.ParseURI(rawURL)
	if err != nil {
		fatal(err)
	}

	var header iohttp.Header
	header.Add("Host", uri.Authority)

	req, err := iohttp.NewRequest("GET", uri, iohttp.HTTP11, header, nil)
	if err != nil {
		fatal(err)
	}

	conn := connect(uri)
	driver := netx.NewConnDriver(conn)
	defer driver.Close()

	follower := iohttp.NewRedirectFollower(req)

	var completed *iohttp.IoIntent
	for {
		result, intent, err := follower.Resume(completed)
		if err != nil {
			fatal(err)
		}
		if intent == nil {
			if result.Reset != nil {
				fmt.Fprintf(os.Stderr, "redirecting to %s://%s%s\n", result.Reset.Scheme, result.Reset.Authority, result.Reset.PathAndQuery())
				conn.Close()
				conn = connect(result.Reset)
				driver.Reset(conn)
				completed = nil
				continue
			}
			printResponse(result.Result.Response)
			return
		}
		completed = driver.Fulfill(intent)
		if completed.Kind == netio.KindError {
			fatal(completed.Err)
		}
	}
}

func connect(uri *iohttp.URI) net.Conn {
	host := uri.Authority
	if !strings.Contains(host, ":") {
		if strings.EqualFold(uri.Scheme, "https") {
			host += ":443"
		} else {
			host += ":80"
		}
	}

	if strings.EqualFold(uri.Scheme, "https") {
		domain, _, _ := strings.Cut(host, ":")
		conn, err := tls.Dial("tcp", host, &tls.Config{ServerName: domain})
		if err != nil {
			fatal(err)
		}
		return conn
	}

	conn, err := net.Dial("tcp", host)
	if err != nil {
		fatal(err)
	}
	return conn
}

func printResponse(resp *iohttp.Response) {
	fmt.Println("-------------------------")
	fmt.Println("-------- HEADERS --------")
	fmt.Println("-------------------------")
	fmt.Printf("%s %d\n", resp.Version, resp.StatusCode)
	for _, f := range resp.Header.Fields() {
		fmt.Printf("%s: %s\n", f.Name, f.Value)
	}

	fmt.Println("-------------------------")
	fmt.Println("--------- BODY ----------")
	fmt.Println("-------------------------")
	os.Stdout.Write(resp.Body)
}

func readLine(prompt string) string {
	fmt.Print(prompt + " ")
	line, _ := bufio.NewReader(os.Stdin).ReadString('\n')
	return strings.TrimSpace(line)
}

func fatal(err error) {
	fmt.Fprintln(os.Stderr, err)
	os.Exit(1)
}
