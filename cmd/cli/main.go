package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	_ "github.com/joho/godotenv/autoload"

	"github.com/praveen-raj-m/compliance-ai/internal/config"
	"github.com/praveen-raj-m/compliance-ai/internal/handlers/api"
	"github.com/praveen-raj-m/compliance-ai/internal/logger"
)

// Interactive compliance questions against the indexed standards.
func main() {
	configPath := flag.String("config", "config.yaml", "path to the config file")
	flag.Parse()

	logger.Init(false)

	cfg, err := config.Load(*configPath)
	if err != nil {
		panic(err)
	}
	handler, err := api.NewHandler(cfg)
	if err != nil {
		panic(err)
	}

	reader := bufio.NewReader(os.Stdin)
	fmt.Println("Compliance assistant. Type 'exit' to quit.")
	for {
		fmt.Print("\nEnter your compliance question: ")
		query, err := reader.ReadString('\n')
		if err != nil {
			return
		}
		query = strings.TrimSpace(query)
		if query == "" {
			continue
		}
		if strings.EqualFold(query, "exit") || strings.EqualFold(query, "quit") {
			return
		}

		fmt.Print("Filter by source (e.g. GDPR, ISO27001) or press Enter: ")
		source, err := reader.ReadString('\n')
		if err != nil {
			return
		}

		result, err := handler.Answer(context.Background(), query, strings.TrimSpace(source))
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			continue
		}

		fmt.Println("\nAnswer:")
		fmt.Println(result.Answer)
		if len(result.Sources) > 0 {
			fmt.Println("\nSources used:")
			for i, s := range result.Sources {
				fmt.Printf("Source %d: %s - Article: %s (%s), score %.4f\n", i+1, s.Source, s.Article, s.Title, s.Score)
			}
		}
	}
}
