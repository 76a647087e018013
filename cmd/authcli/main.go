package main

import (
	"bufio"
	"context"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/safeshareapp/safeshare/client/authflow"
	"github.com/safeshareapp/safeshare/internal/pkg/config"
	"github.com/safeshareapp/safeshare/internal/pkg/logger"
)

// terminalNavigator prints the flow's exit transitions and stops the loop
type terminalNavigator struct {
	done bool
}

func (n *terminalNavigator) NavigateHome() {
	n.done = true
	fmt.Println("Signed in. You can now use your access token.")
}

func (n *terminalNavigator) NavigateSignIn(notice string) {
	fmt.Println(notice)
}

func main() {
	configs := config.InitConfig(os.Getenv("CONFIG_PATH"))

	zapLogger, err := logger.InitZapLoggerFromConfig(configs)
	if err != nil {
		log.Fatalf("Failed to create Zap logger: %v", err)
	}
	defer zapLogger.Close()
	logger.SetGlobalLogger(zapLogger)

	tokenPath := configs.Client.TokenPath
	if tokenPath == "" {
		tokenPath, err = authflow.DefaultTokenPath()
		if err != nil {
			log.Fatalf("Failed to resolve token path: %v", err)
		}
	}

	client := authflow.NewHTTPIdentityClient(configs)
	tokens := authflow.NewTokenStore(tokenPath)
	nav := &terminalNavigator{}
	flow := authflow.New(client, tokens, nav)

	ctx := context.Background()
	if flow.RestoreSession(ctx) {
		fmt.Println("Existing session restored.")
		return
	}

	reader := bufio.NewReader(os.Stdin)
	for !nav.done {
		state := flow.State()
		if state.Error != "" {
			fmt.Println("! " + state.Error)
		}

		switch state.Step {
		case authflow.StepEmail:
			flow.SubmitEmail(ctx, prompt(reader, "Email: "))

		case authflow.StepPassword:
			flow.SubmitPassword(ctx, prompt(reader, "Password: "))

		case authflow.StepSignup:
			input := authflow.SignupInput{
				Email:    state.Email,
				Name:     prompt(reader, "Name: "),
				Password: prompt(reader, "Password: "),
			}
			input.ConfirmPassword = prompt(reader, "Confirm password: ")
			flow.SubmitSignup(ctx, input)

		case authflow.StepOTP:
			code := prompt(reader, "Verification code (or 'resend'): ")
			if strings.EqualFold(code, "resend") {
				flow.ResendOTP(ctx)
				continue
			}
			flow.SubmitOTP(ctx, code)
		}
	}
}

func prompt(reader *bufio.Reader, label string) string {
	fmt.Print(label)
	line, _ := reader.ReadString('\n')
	return strings.TrimSpace(line)
}
