// Command stegpng-stored serves a carrier store over gRPC.
//
// Carriers are whole PNG chunk streams addressed by CIDv1 (raw, sha2-256).
// Put rejects bytes that do not parse as a chunk stream, so everything a
// daemon holds is a well-formed carrier. With more than one -root, writes
// replicate to every root and reads fall back in order.
package main

import (
	"flag"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"strings"

	"google.golang.org/grpc"

	"xdao.co/stegpng/storage"
	"xdao.co/stegpng/storage/grpcstore"
	"xdao.co/stegpng/storage/localfs"
)

func main() {
	fs := flag.NewFlagSet("stegpng-stored", flag.ExitOnError)
	listen := fs.String("listen", "127.0.0.1:7777", "listen address")
	roots := fs.String("root", "", "comma-separated filesystem roots (required; >1 replicates)")

	_ = fs.Parse(os.Args[1:])

	var backends []storage.NamedCAS
	for _, root := range strings.Split(*roots, ",") {
		root = strings.TrimSpace(root)
		if root == "" {
			continue
		}
		cas, err := localfs.New(root)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(2)
		}
		backends = append(backends, storage.NamedCAS{Name: filepath.Clean(root), CAS: cas})
	}
	if len(backends) == 0 {
		fmt.Fprintln(os.Stderr, "stegpng-stored: at least one -root is required")
		os.Exit(2)
	}

	var cas storage.CAS
	if len(backends) == 1 {
		cas = backends[0].CAS
	} else {
		cas = storage.ReplicatingCAS{Backends: backends}
	}

	lis, err := net.Listen("tcp", *listen)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer lis.Close()

	s := grpc.NewServer()
	grpcstore.RegisterCarrierStoreServer(s, &grpcstore.Server{CAS: cas})

	fmt.Fprintf(os.Stderr, "stegpng-stored listening on %s (%d root(s))\n", lis.Addr().String(), len(backends))
	if err := s.Serve(lis); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
