package main

//go:generate swag init -g cmd/dinoverse/main.go -o docs

// @title           Dinoverse API
// @version         0.1.0
// @description     Marketing site content, admin CRUD and the Life-OS dashboard.
// @host            localhost:8080
// @BasePath        /
// @schemes         http
