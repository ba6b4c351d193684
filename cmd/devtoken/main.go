// Command devtoken prints a bearer token for local calls to the seating
// area API.  It signs with JWT_SECRET from the environment or .env.
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/iliyamo/seating-areas/internal/utils"
)

func main() {
	user := flag.String("user", "", "user id placed in the sub claim")
	ttl := flag.Duration("ttl", time.Hour, "token lifetime")
	flag.Parse()

	_ = godotenv.Load()
	secret := os.Getenv("JWT_SECRET")
	if secret == "" || *user == "" {
		logrus.Fatal("JWT_SECRET and -user are required")
	}

	tok, err := utils.NewAccessToken(secret, *user, *ttl)
	if err != nil {
		logrus.WithError(err).Fatal("sign token")
	}
	fmt.Println(tok.Token)
}
