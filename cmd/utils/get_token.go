package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"
)

// One-shot helper: run a client-credentials exchange against the provider
// token endpoint and print the bearer token, for poking the search API by
// hand.
func main() {
	godotenv.Load()

	tokenURL := os.Getenv("AMADEUS_TOKEN_URL")
	if tokenURL == "" {
		tokenURL = "https://test.api.amadeus.com/v1/security/oauth2/token"
	}

	conf := &clientcredentials.Config{
		ClientID:     os.Getenv("AMADEUS_API_KEY"),
		ClientSecret: os.Getenv("AMADEUS_API_SECRET"),
		TokenURL:     tokenURL,
		AuthStyle:    oauth2.AuthStyleInParams,
	}

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Second)
	defer cancel()

	token, err := conf.Token(ctx)
	if err != nil {
		log.Fatalf("token exchange failed: %v", err)
	}

	fmt.Printf("\nAccess Token: %s\nExpires: %s\n\n", token.AccessToken, token.Expiry.Format(time.RFC3339))
}
