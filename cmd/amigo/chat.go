package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	amigo "github.com/amigo-ai/client-go"
)

var chatServiceID string

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Start an interactive conversation with a service",
	RunE: func(cmd *cobra.Command, args []string) error {
		if chatServiceID == "" {
			return fmt.Errorf("--service is required")
		}

		client, err := buildClient()
		if err != nil {
			return err
		}
		defer client.Close()

		ctx := cmd.Context()

		stream, err := client.Conversations.Create(ctx,
			&amigo.CreateConversationRequest{ServiceID: chatServiceID},
			&amigo.CreateConversationParams{ResponseFormat: "text"})
		if err != nil {
			return err
		}

		conversationID, err := printStream(stream)
		if err != nil {
			return err
		}
		if conversationID == "" {
			return fmt.Errorf("server did not report a conversation id")
		}

		scanner := bufio.NewScanner(os.Stdin)
		for {
			fmt.Print("> ")
			if !scanner.Scan() {
				break
			}
			text := strings.TrimSpace(scanner.Text())
			if text == "" {
				continue
			}
			if text == "/quit" {
				break
			}

			stream, err := client.Conversations.Interact(ctx, conversationID,
				&amigo.InteractRequest{Text: text},
				&amigo.InteractParams{RequestFormat: "text", ResponseFormat: "text"})
			if err != nil {
				return err
			}
			if _, err := printStream(stream); err != nil {
				return err
			}
		}

		if err := client.Conversations.Finish(context.WithoutCancel(ctx), conversationID); err != nil {
			return fmt.Errorf("finish conversation: %w", err)
		}
		return scanner.Err()
	},
}

// printStream writes agent message chunks to stdout and returns the
// conversation ID if the stream announced one.
func printStream(stream *amigo.EventStream) (string, error) {
	defer stream.Close()

	var conversationID string
	for stream.Next() {
		switch ev := stream.Event().(type) {
		case *amigo.ConversationCreatedEvent:
			conversationID = ev.ConversationID
		case *amigo.NewMessageEvent:
			fmt.Print(ev.Message)
		case *amigo.InteractionCompleteEvent:
			fmt.Println()
		case *amigo.ErrorEvent:
			fmt.Fprintf(os.Stderr, "\nserver error: %s\n", ev.Message)
		}
	}
	return conversationID, stream.Err()
}

func init() {
	chatCmd.Flags().StringVar(&chatServiceID, "service", "", "service ID to converse with")
}
