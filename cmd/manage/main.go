package main

import (
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"os/exec"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const usage = `Usage: manage <command>

Commands:
  start            Start the service containers
  stop             Stop the service containers
  restart          Restart the service containers
  status           Show container status
  logs [service]   Tail container logs, optionally for one service
  build            Build the service images
  obs-start        Start the observability containers
  obs-stop         Stop the observability containers
  obs-logs [service]
                   Tail observability logs, optionally for one service
  start-all        Start service and observability containers
  stop-all         Stop service and observability containers
  clean            Remove all containers, volumes and orphans
  test-lb          Send test requests through the gateway
  help             Show this listing
`

// cli wraps the external orchestrator. Everything here is a thin dispatch:
// one command in, a fixed sequence of docker compose invocations out, the
// first failure's exit code propagated unmodified.
type cli struct {
	composeFile    string
	obsComposeFile string
	gatewayURL     string

	stdout io.Writer
	stderr io.Writer

	// exec runs an external command attached to stdout/stderr. Tests
	// replace it to record invocations.
	exec func(name string, args ...string) error
}

func newCLI(stdout, stderr io.Writer) *cli {
	viper.SetDefault("COMPOSE_FILE", "docker-compose.yml")
	viper.SetDefault("OBS_COMPOSE_FILE", "docker-compose.observability.yml")
	viper.SetDefault("GATEWAY_URL", "http://localhost:8000")
	viper.AutomaticEnv()

	c := &cli{
		composeFile:    viper.GetString("COMPOSE_FILE"),
		obsComposeFile: viper.GetString("OBS_COMPOSE_FILE"),
		gatewayURL:     viper.GetString("GATEWAY_URL"),
		stdout:         stdout,
		stderr:         stderr,
	}
	c.exec = func(name string, args ...string) error {
		cmd := exec.Command(name, args...)
		cmd.Stdout = stdout
		cmd.Stderr = stderr
		return cmd.Run()
	}
	return c
}

// compose invokes docker compose against the given file.
func (c *cli) compose(file string, args ...string) error {
	full := append([]string{"compose", "-f", file}, args...)
	return c.exec("docker", full...)
}

// run dispatches a single command and returns the process exit code.
func (c *cli) run(args []string) int {
	if len(args) == 0 {
		fmt.Fprint(c.stdout, usage)
		return 0
	}

	command := args[0]
	rest := args[1:]

	var err error
	switch command {
	case "start":
		if _, statErr := os.Stat(c.composeFile); statErr != nil {
			fmt.Fprintf(c.stderr, "Compose file %s not found\n", c.composeFile)
			return 1
		}
		err = c.compose(c.composeFile, "up", "-d")
	case "stop":
		err = c.compose(c.composeFile, "down")
	case "restart":
		if err = c.compose(c.composeFile, "down"); err == nil {
			err = c.compose(c.composeFile, "up", "-d")
		}
	case "status":
		err = c.compose(c.composeFile, "ps")
	case "logs":
		err = c.compose(c.composeFile, append([]string{"logs", "-f"}, rest...)...)
	case "build":
		err = c.compose(c.composeFile, "build")
	case "obs-start":
		if _, statErr := os.Stat(c.obsComposeFile); statErr != nil {
			fmt.Fprintf(c.stderr, "Compose file %s not found\n", c.obsComposeFile)
			return 1
		}
		err = c.compose(c.obsComposeFile, "up", "-d")
	case "obs-stop":
		err = c.compose(c.obsComposeFile, "down")
	case "obs-logs":
		err = c.compose(c.obsComposeFile, append([]string{"logs", "-f"}, rest...)...)
	case "start-all":
		return c.runAll([]string{"start"}, []string{"obs-start"})
	case "stop-all":
		return c.runAll([]string{"obs-stop"}, []string{"stop"})
	case "clean":
		if err = c.compose(c.composeFile, "down", "-v", "--remove-orphans"); err == nil {
			err = c.compose(c.obsComposeFile, "down", "-v", "--remove-orphans")
		}
	case "test-lb":
		return c.testLoadBalancer()
	default:
		fmt.Fprint(c.stdout, usage)
		return 0
	}

	return exitCode(err)
}

// runAll dispatches a sequence of commands, stopping at the first failure.
func (c *cli) runAll(commands ...[]string) int {
	for _, command := range commands {
		if code := c.run(command); code != 0 {
			return code
		}
	}
	return 0
}

// testLoadBalancer sends a fixed round of requests through the gateway and
// prints the status of each one.
func (c *cli) testLoadBalancer() int {
	client := &http.Client{Timeout: 5 * time.Second}
	failures := 0
	for i := 1; i <= 10; i++ {
		resp, err := client.Get(c.gatewayURL + "/health")
		if err != nil {
			fmt.Fprintf(c.stdout, "Request %2d: error: %v\n", i, err)
			failures++
			continue
		}
		fmt.Fprintf(c.stdout, "Request %2d: %s\n", i, resp.Status)
		resp.Body.Close()
	}
	if failures > 0 {
		fmt.Fprintf(c.stdout, "%d of 10 requests failed\n", failures)
		return 1
	}
	fmt.Fprintln(c.stdout, "All requests succeeded")
	return 0
}

// exitCode maps a command error to a process exit code, preserving the
// external tool's own code where it has one.
func exitCode(err error) int {
	if err == nil {
		return 0
	}
	if exitErr, ok := err.(*exec.ExitError); ok {
		return exitErr.ExitCode()
	}
	return 1
}

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on environment variables")
	}

	c := newCLI(os.Stdout, os.Stderr)
	os.Exit(c.run(os.Args[1:]))
}
