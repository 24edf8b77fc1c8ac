package main

import "github.com/hurlingham/leaguesync/internal/cli"

func main() {
	cli.Execute()
}
