package main

import "github.com/JoshuaKitai/Fitnessify/cmd/fitnessify"

func main() {
	fitnessify.Execute()
}
