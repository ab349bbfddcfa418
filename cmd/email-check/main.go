package main

var (
	Version   = "dev"
	BuildTime = "unknown"
)

func main() {
	Execute()
}
