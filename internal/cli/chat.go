package cli

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var (
	chatCustomerName string
	chatTicketID     string
	chatShowSources  bool
)

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Start an interactive support chat session",
	Long: `Opens a chat session with the support agent and reads messages from
stdin. Type /history to print the conversation, /clear to reset it,
and /quit to leave.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		client := newAPIClient(serverURL)

		var created struct {
			ChatID  string `json:"chat_id"`
			Message string `json:"message"`
		}
		body := map[string]string{
			"customer_name": chatCustomerName,
			"ticket_id":     chatTicketID,
		}
		if err := client.post("/api/chat/create", body, &created); err != nil {
			return err
		}

		agentLabel := color.New(color.FgCyan, color.Bold).SprintFunc()
		sourceLabel := color.New(color.Faint).SprintFunc()

		fmt.Printf("%s %s\n", agentLabel("agent:"), created.Message)
		fmt.Println(sourceLabel("(chat " + created.ChatID + ")"))

		scanner := bufio.NewScanner(os.Stdin)
		for {
			fmt.Print("you: ")
			if !scanner.Scan() {
				break
			}
			line := strings.TrimSpace(scanner.Text())
			if line == "" {
				continue
			}

			switch line {
			case "/quit", "/exit":
				return nil
			case "/history":
				if err := printHistory(client, created.ChatID); err != nil {
					fmt.Fprintln(os.Stderr, "Error:", err)
				}
				continue
			case "/clear":
				if err := client.get("/api/chat/"+created.ChatID+"/clear", nil); err != nil {
					fmt.Fprintln(os.Stderr, "Error:", err)
					continue
				}
				fmt.Println("History cleared.")
				continue
			}

			var reply struct {
				AgentResponse string `json:"agent_response"`
				KBSources     []struct {
					Source     string `json:"source"`
					Page       int    `json:"page"`
					Similarity string `json:"similarity"`
				} `json:"kb_sources"`
				Degraded bool `json:"degraded"`
			}
			err := client.post("/api/chat/"+created.ChatID+"/message",
				map[string]string{"user_message": line}, &reply)
			if err != nil {
				fmt.Fprintln(os.Stderr, "Error:", err)
				continue
			}

			fmt.Printf("%s %s\n", agentLabel("agent:"), reply.AgentResponse)
			if chatShowSources {
				for _, source := range reply.KBSources {
					fmt.Println(sourceLabel(fmt.Sprintf("  source: %s (page %d, %s)",
						source.Source, source.Page, source.Similarity)))
				}
			}
			if reply.Degraded {
				fmt.Println(sourceLabel("  (degraded reply)"))
			}
		}
		return scanner.Err()
	},
}

func printHistory(client *apiClient, chatID string) error {
	var history struct {
		Messages []struct {
			Role    string `json:"role"`
			Content string `json:"message"`
		} `json:"messages"`
	}
	if err := client.get("/api/chat/"+chatID+"/history", &history); err != nil {
		return err
	}
	for _, message := range history.Messages {
		fmt.Printf("%s: %s\n", message.Role, message.Content)
	}
	return nil
}

func init() {
	chatCmd.Flags().StringVar(&chatCustomerName, "name", "", "customer name (required)")
	chatCmd.Flags().StringVar(&chatTicketID, "ticket", "", "ticket ID to attach to the chat")
	chatCmd.Flags().BoolVar(&chatShowSources, "sources", true, "print knowledge base sources with each reply")
	_ = chatCmd.MarkFlagRequired("name")
	rootCmd.AddCommand(chatCmd)
}
