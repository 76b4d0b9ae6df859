// Dev tool: mint a JWT for exercising the API by hand.
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/campuslane/server/internal/auth"
)

func main() {
	var (
		secret  = flag.String("secret", os.Getenv("JWT_SECRET"), "JWT signing secret")
		subject = flag.String("subject", "01HQZX3Y4K6F7G8H9J0K1M2N3P", "user id to embed as subject")
		role    = flag.String("role", "STUDENT", "role claim (ADMIN or STUDENT)")
		expiry  = flag.Duration("expiry", 24*time.Hour, "token lifetime")
	)
	flag.Parse()

	if *secret == "" {
		fmt.Fprintln(os.Stderr, "Error: provide -secret or set JWT_SECRET")
		os.Exit(1)
	}
	if auth.NormalizeRole(*role) == "" {
		fmt.Fprintf(os.Stderr, "Error: unknown role %q\n", *role)
		os.Exit(1)
	}

	manager := auth.NewJWTManager(*secret, *expiry, "campuslane")
	token, err := manager.Generate(*subject, string(auth.NormalizeRole(*role)))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("JWT Token:")
	fmt.Println(token)
	fmt.Println("\nTest with:")
	fmt.Printf("curl -H 'Authorization: Bearer %s' http://localhost:8080/api/v1/registrations/mine\n", token)
}
