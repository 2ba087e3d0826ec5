// Command social is an interactive terminal client for the Periferia Social
// API. It drives the session and feed stores the same way the web frontend
// does: login, browse the feed, post, like and unlike.
package main

import (
	"bufio"
	"context"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"golang.org/x/term"

	"github.com/periferia/periferia-social/internal/client"
)

// readPassword is a seam over term.ReadPassword so the prompt logic stays
// testable without a terminal.
var readPassword = term.ReadPassword

func main() {
	baseURL := os.Getenv("API_URL")
	if baseURL == "" {
		baseURL = "http://localhost:8080"
	}

	sessionPath, err := client.DefaultSessionPath()
	if err != nil {
		slog.Error("cannot resolve session path", "error", err)
		os.Exit(1)
	}

	api := client.New(baseURL)
	session := client.NewSessionStore(api, client.NewSessionStorage(sessionPath))
	feed := client.NewFeedStore(api)

	ctx := context.Background()
	if err := session.Init(ctx); err != nil {
		slog.Warn("session restore failed", "error", err)
	}

	app := &app{session: session, feed: feed, reader: bufio.NewReader(os.Stdin)}
	app.run(ctx)
}

type app struct {
	session *client.SessionStore
	feed    *client.FeedStore
	reader  *bufio.Reader
}

func (a *app) run(ctx context.Context) {
	fmt.Println("Periferia Social — escribe 'help' para ver los comandos")

	for {
		fmt.Print(a.prompt() + "> ")
		line, err := a.reader.ReadString('\n')
		if err != nil {
			return
		}

		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}

		switch cmd := fields[0]; cmd {
		case "help":
			a.printHelp()
		case "login":
			a.login(ctx)
		case "logout":
			a.session.Logout()
			a.feed.Reset()
			fmt.Println("Sesión cerrada")
		case "whoami":
			a.whoami()
		case "feed":
			a.showFeed(ctx)
		case "post":
			a.createPost(ctx)
		case "like", "unlike":
			a.toggleLike(ctx, fields[1:], cmd == "unlike")
		case "exit", "quit":
			return
		default:
			fmt.Printf("Comando desconocido: %s\n", cmd)
		}
	}
}

func (a *app) prompt() string {
	if user := a.session.User(); user != nil {
		return "@" + user.Alias + " "
	}
	return ""
}

func (a *app) printHelp() {
	fmt.Println(`Comandos:
  login        iniciar sesión
  logout       cerrar sesión
  whoami       mostrar el perfil actual
  feed         mostrar las publicaciones
  post         crear una publicación
  like <n>     dar like a la publicación n del feed
  unlike <n>   quitar el like de la publicación n
  exit         salir`)
}

func (a *app) login(ctx context.Context) {
	fmt.Print("Usuario, alias o correo: ")
	identifier, err := a.reader.ReadString('\n')
	if err != nil {
		return
	}

	fmt.Print("Contraseña: ")
	password, err := readPassword(int(os.Stdin.Fd()))
	fmt.Println()
	if err != nil {
		fmt.Println("No se pudo leer la contraseña")
		return
	}

	if err := a.session.Login(ctx, strings.TrimSpace(identifier), string(password)); err != nil {
		fmt.Println(a.session.Error())
		return
	}

	user := a.session.User()
	fmt.Printf("Hola, %s (@%s)\n", user.FirstName, user.Alias)
}

func (a *app) whoami() {
	user := a.session.User()
	if user == nil {
		fmt.Println("No has iniciado sesión")
		return
	}
	fmt.Printf("%s %s (@%s) — %s\n", user.FirstName, user.LastName, user.Alias, user.Email)
}

func (a *app) showFeed(ctx context.Context) {
	if err := a.feed.Fetch(ctx); err != nil {
		fmt.Println(a.feed.Error())
		return
	}

	entries := a.feed.Entries()
	if len(entries) == 0 {
		fmt.Println("No hay publicaciones todavía")
		return
	}

	for i, entry := range entries {
		marker := " "
		if entry.LikedByMe {
			marker = "♥"
		}
		fmt.Printf("%2d. %s @%s — %s\n    %s [%d likes %s]\n",
			i+1, entry.Author.Name, entry.Author.Alias,
			entry.PublishedAt.Local().Format("02 Jan 15:04"),
			entry.Message, entry.Likes, marker)
	}
}

func (a *app) createPost(ctx context.Context) {
	fmt.Print("Mensaje (máx. 280 caracteres): ")
	message, err := a.reader.ReadString('\n')
	if err != nil {
		return
	}

	if _, err := a.feed.Create(ctx, strings.TrimSpace(message)); err != nil {
		fmt.Println(a.feed.Error())
		return
	}
	fmt.Println("Publicado ✔")
}

func (a *app) toggleLike(ctx context.Context, args []string, unlike bool) {
	if len(args) != 1 {
		fmt.Println("Uso: like <n> | unlike <n>")
		return
	}

	n, err := strconv.Atoi(args[0])
	entries := a.feed.Entries()
	if err != nil || n < 1 || n > len(entries) {
		fmt.Println("Número de publicación inválido (usa 'feed' primero)")
		return
	}

	entry := entries[n-1]
	updated, err := a.feed.ToggleLike(ctx, entry.ID, unlike)
	if err != nil {
		fmt.Println(a.feed.Error())
		return
	}
	fmt.Printf("%s — %d likes\n", updated.Message, updated.Likes)
}
