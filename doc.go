// Package amigo provides a Go client SDK for the Amigo conversational
// AI platform.
//
// The client exchanges a long-lived API key for short-lived bearer
// tokens, refreshes them transparently, retries transient failures with
// exponential backoff, and streams conversation events as they are
// generated by the agent.
//
// Basic usage:
//
//	client, err := amigo.NewFromEnv()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer client.Close()
//
//	// Start a conversation
//	stream, err := client.Conversations.Create(ctx,
//	    &amigo.CreateConversationRequest{ServiceID: serviceID},
//	    &amigo.CreateConversationParams{ResponseFormat: "text"})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer stream.Close()
//
//	for stream.Next() {
//	    if ev, ok := stream.Event().(*amigo.NewMessageEvent); ok {
//	        fmt.Print(ev.Message)
//	    }
//	}
//	if err := stream.Err(); err != nil {
//	    log.Fatal(err)
//	}
package amigo
