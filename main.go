package main

import (
	"context"

	"car-price-scraper/cmd"
)

func main() {
	cmd.ExecuteContext(context.Background())
}
