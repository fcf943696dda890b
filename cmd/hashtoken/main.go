// Command hashtoken prints the bcrypt hash to use as TOKEN_API_HASH.
package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/cleberrangel/capacidad-recursos-api/internal/middleware"
)

func main() {
	token := ""
	if len(os.Args) > 1 {
		token = os.Args[1]
	} else {
		// lê do stdin para não deixar o token no histórico do shell
		line, err := bufio.NewReader(os.Stdin).ReadString('\n')
		if err != nil && line == "" {
			fmt.Fprintln(os.Stderr, "uso: hashtoken <token>  (ou token via stdin)")
			os.Exit(2)
		}
		token = line
	}

	token = strings.TrimSpace(token)
	if token == "" {
		fmt.Fprintln(os.Stderr, "token vazio")
		os.Exit(2)
	}

	hash, err := middleware.HashToken(token)
	if err != nil {
		fmt.Fprintf(os.Stderr, "erro ao gerar hash: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(hash)
}
