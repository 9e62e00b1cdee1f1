package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"strings"

	"github.com/google/uuid"
	"github.com/joho/godotenv"

	"chat-relay/internal/domain"
)

const defaultRelayURL = "http://localhost:8080/"

func main() {
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	relayURL := strings.TrimSpace(os.Getenv("RELAY_URL"))
	if relayURL == "" {
		relayURL = defaultRelayURL
	}
	userID := strings.TrimSpace(os.Getenv("RELAY_USER_ID"))
	if userID == "" {
		userID = "cli-" + uuid.NewString()
	}

	client := newRelayClient(relayURL, nil)
	fmt.Printf("Relay: %s (userId %s)\n", relayURL, userID)
	if err := chatFlow(ctx, bufio.NewReader(os.Stdin), os.Stdout, client, userID); err != nil {
		log.Fatal(err)
	}
}

// chatFlow mantiene la transcripción en memoria y la envía completa en cada turno.
func chatFlow(ctx context.Context, reader *bufio.Reader, out io.Writer, client *relayClient, userID string) error {
	var transcript []domain.ChatMessage

	fmt.Fprintln(out, "---- Modo Chat ('salir' para terminar, '/reset' para limpiar) ----")
	for {
		fmt.Fprint(out, "Tu > ")
		text, err := reader.ReadString('\n')
		if err == io.EOF && strings.TrimSpace(text) == "" {
			return nil
		}
		if err != nil && err != io.EOF {
			return fmt.Errorf("leer input: %w", err)
		}
		text = strings.TrimSpace(text)
		switch {
		case text == "":
			continue
		case strings.EqualFold(text, "salir") || strings.EqualFold(text, "exit"):
			fmt.Fprintln(out, "Saliendo del chat...")
			return nil
		case text == "/reset":
			transcript = nil
			fmt.Fprintln(out, "Historial limpio.")
			continue
		}

		transcript = append(transcript, domain.ChatMessage{Role: domain.RoleUser, Content: text})
		reply, err := client.Send(ctx, userID, transcript)
		if err != nil {
			// el turno fallido no queda en la transcripción
			transcript = transcript[:len(transcript)-1]
			fmt.Fprintf(out, "error generando respuesta: %v\n", err)
			continue
		}
		transcript = append(transcript, domain.ChatMessage{Role: domain.RoleAssistant, Content: reply})
		fmt.Fprintf(out, "AI > %s\n", reply)
	}
}
