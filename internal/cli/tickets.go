package cli

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

type ticketView struct {
	ID           string `json:"ticket_id"`
	CustomerName string `json:"customer_name"`
	Status       string `json:"status"`
	Priority     string `json:"priority"`
	CreatedDate  string `json:"created_date"`
	Title        string `json:"title"`
	Description  string `json:"description"`
	Category     string `json:"category"`
}

var (
	ticketCustomer    string
	ticketTitle       string
	ticketDescription string
	ticketCategory    string
	ticketPriority    string
)

var ticketsCmd = &cobra.Command{
	Use:   "tickets",
	Short: "Inspect and manage support tickets",
}

var ticketsListCmd = &cobra.Command{
	Use:   "list [query]",
	Short: "List tickets, optionally filtered by a search term",
	RunE: func(cmd *cobra.Command, args []string) error {
		client := newAPIClient(serverURL)

		path := "/api/tickets"
		if len(args) > 0 {
			path += "?q=" + args[0]
		}

		var resp struct {
			Total   int          `json:"total"`
			Tickets []ticketView `json:"tickets"`
		}
		if err := client.get(path, &resp); err != nil {
			return err
		}

		if resp.Total == 0 {
			fmt.Println("No tickets found.")
			return nil
		}
		for _, ticket := range resp.Tickets {
			printTicketLine(ticket)
		}
		return nil
	},
}

var ticketsGetCmd = &cobra.Command{
	Use:   "get <ticket-id>",
	Short: "Show one ticket in full",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client := newAPIClient(serverURL)

		var ticket ticketView
		if err := client.get("/api/tickets/"+args[0], &ticket); err != nil {
			return err
		}

		fmt.Printf("Ticket ID:   %s\n", ticket.ID)
		fmt.Printf("Customer:    %s\n", ticket.CustomerName)
		fmt.Printf("Status:      %s\n", ticket.Status)
		fmt.Printf("Priority:    %s\n", ticket.Priority)
		fmt.Printf("Category:    %s\n", ticket.Category)
		fmt.Printf("Created:     %s\n", ticket.CreatedDate)
		fmt.Printf("Title:       %s\n", ticket.Title)
		fmt.Printf("Description: %s\n", ticket.Description)
		return nil
	},
}

var ticketsCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a new ticket",
	RunE: func(cmd *cobra.Command, args []string) error {
		client := newAPIClient(serverURL)

		body := map[string]string{
			"customer_name": ticketCustomer,
			"title":         ticketTitle,
			"description":   ticketDescription,
			"category":      ticketCategory,
			"priority":      ticketPriority,
		}
		var ticket ticketView
		if err := client.post("/api/tickets", body, &ticket); err != nil {
			return err
		}

		fmt.Printf("Created ticket %s\n", ticket.ID)
		return nil
	},
}

var ticketsStatusCmd = &cobra.Command{
	Use:   "status <ticket-id> <open|in_progress|resolved|closed>",
	Short: "Update a ticket's status",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		client := newAPIClient(serverURL)

		body := map[string]string{"status": args[1]}
		if err := client.post("/api/tickets/"+args[0]+"/status", body, nil); err != nil {
			return err
		}
		fmt.Printf("Ticket %s is now %s\n", args[0], args[1])
		return nil
	},
}

func printTicketLine(ticket ticketView) {
	status := color.New(color.FgYellow).SprintFunc()
	switch ticket.Status {
	case "resolved", "closed":
		status = color.New(color.FgGreen).SprintFunc()
	case "open":
		status = color.New(color.FgRed).SprintFunc()
	}
	fmt.Printf("%-12s %-10s %-8s %-20s %s\n",
		ticket.ID, status(ticket.Status), ticket.Priority, ticket.CustomerName, ticket.Title)
}

func init() {
	ticketsCreateCmd.Flags().StringVar(&ticketCustomer, "customer", "", "customer name (required)")
	ticketsCreateCmd.Flags().StringVar(&ticketTitle, "title", "", "ticket title (required)")
	ticketsCreateCmd.Flags().StringVar(&ticketDescription, "description", "", "ticket description")
	ticketsCreateCmd.Flags().StringVar(&ticketCategory, "category", "", "ticket category")
	ticketsCreateCmd.Flags().StringVar(&ticketPriority, "priority", "", "ticket priority")
	_ = ticketsCreateCmd.MarkFlagRequired("customer")
	_ = ticketsCreateCmd.MarkFlagRequired("title")

	ticketsCmd.AddCommand(ticketsListCmd)
	ticketsCmd.AddCommand(ticketsGetCmd)
	ticketsCmd.AddCommand(ticketsCreateCmd)
	ticketsCmd.AddCommand(ticketsStatusCmd)
	rootCmd.AddCommand(ticketsCmd)
}
