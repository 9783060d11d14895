package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charanhu/support-agent/internal/api"
	"github.com/charanhu/support-agent/internal/config"
	"github.com/charanhu/support-agent/internal/core"
	"github.com/charanhu/support-agent/internal/store"
	"github.com/charanhu/support-agent/internal/tickets"
)

func main() {
	// Load configuration
	config.LoadConfig()

	// Setup logging
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	if config.AppConfig.LogLevel == "DEBUG" {
		log.Println("Service starting in DEBUG mode")
	}

	// Command line flag for building the knowledge base index
	ingestFlag := flag.Bool("ingest", false, "Build the knowledge base from the data folder and exit")
	flag.Parse()

	// Initialize database store
	dbStore, err := store.NewSQLiteStore(config.AppConfig.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer dbStore.Close()

	// Initialize LLM service
	ctx := context.Background()
	llmService, err := core.NewLLMService(ctx, config.AppConfig.GeminiAPIKey)
	if err != nil {
		log.Fatalf("Failed to initialize LLM service: %v", err)
	}
	defer llmService.Close()

	// Initialize knowledge base over the persisted chunks
	kb, err := core.NewKnowledgeBase(ctx, dbStore, llmService,
		config.AppConfig.ChunkSize, config.AppConfig.ChunkOverlap)
	if err != nil {
		log.Fatalf("Failed to initialize knowledge base: %v", err)
	}

	// Handle index build if the flag is set
	if *ingestFlag {
		log.Printf("Building knowledge base from %s ...", config.AppConfig.DataFolder)
		docs, err := core.LoadDocumentsFromFolder(config.AppConfig.DataFolder)
		if err != nil {
			log.Fatalf("Failed to load documents: %v", err)
		}
		if len(docs) == 0 {
			log.Fatalf("No documents found in %s", config.AppConfig.DataFolder)
		}
		numIngested, err := kb.Ingest(ctx, docs)
		if err != nil {
			log.Fatalf("Knowledge base build failed: %v", err)
		}
		log.Printf("Knowledge base build complete. Ingested %d chunks from %d documents. Exiting.",
			numIngested, len(docs))
		// llmService.Close() and dbStore.Close() will be called by their defers on exit.
		os.Exit(0)
	}

	// Initialize the remaining collaborators
	retriever := core.NewRetriever(kb, config.AppConfig.SearchResults)
	ticketSystem := tickets.NewSystem()
	conversations := store.NewConversationStore(config.AppConfig.MaxChatHistory)
	assembler := core.NewPromptAssembler("", config.AppConfig.MaxChatHistory)

	agent := core.NewAgentService(conversations, retriever, ticketSystem, llmService,
		assembler, core.LogFailureRecorder{}, config.AppConfig.AgentTemperature,
		config.AppConfig.AgentMaxTokens)

	// Initialize API Handler and Router
	requestTimeout := time.Duration(config.AppConfig.RequestTimeoutSecs) * time.Second
	apiHandler := api.NewAPIHandler(agent, kb, retriever, ticketSystem,
		config.AppConfig.DataFolder, requestTimeout)
	router := api.NewRouter(apiHandler)

	// Start HTTP server
	serverAddr := fmt.Sprintf(":%s", config.AppConfig.HTTPPort)

	srv := &http.Server{
		Addr:         serverAddr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: requestTimeout + 15*time.Second, // LLM calls can take time
		IdleTimeout:  120 * time.Second,
	}

	// Graceful shutdown handling
	go func() {
		log.Printf("Starting server on %s. Press Ctrl+C to quit.", serverAddr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Could not listen on %s: %v\n", serverAddr, err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	// Give active connections time to finish.
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exiting gracefully")
}
