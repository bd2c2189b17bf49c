// Command mdcore-edit exposes the session manager over a single websocket
// connection per editor: a client sends {type:"create"|"edit"|"snapshot"|"destroy"}
// frames and receives the resulting delta or snapshot back as JSON.
package main

import (
	"encoding/json"
	"log"
	"net/http"
	"os"

	"github.com/gorilla/websocket"

	"github.com/brandonbloom/mdcore"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  4096,
	WriteBufferSize: 4096,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

type frameIn struct {
	Type   string              `json:"type"`
	ID     string              `json:"id"`
	Source string              `json:"source,omitempty"`
	Edits  []mdcore.SessionEdit `json:"edits,omitempty"`
}

type frameOut struct {
	Type        string               `json:"type"`
	ID          string               `json:"id,omitempty"`
	Delta       *mdcore.SessionDelta `json:"delta,omitempty"`
	Snapshot    json.RawMessage      `json:"snapshot,omitempty"`
	Diagnostics int                  `json:"diagnosticsCount,omitempty"`
	Error       string               `json:"error,omitempty"`
}

func main() {
	var sessions mdcore.Sessions

	http.HandleFunc("/edit", func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			log.Printf("mdcore-edit: upgrade failed: %v", err)
			return
		}
		defer conn.Close()
		serveConn(conn, &sessions)
	})

	addr := os.Getenv("MDCORE_EDIT_ADDR")
	if addr == "" {
		addr = ":8081"
	}
	log.Printf("mdcore-edit listening on %s", addr)
	if err := http.ListenAndServe(addr, nil); err != nil {
		log.Fatal(err)
	}
}

func serveConn(conn *websocket.Conn, sessions *mdcore.Sessions) {
	for {
		var in frameIn
		if err := conn.ReadJSON(&in); err != nil {
			return
		}
		out := handleFrame(sessions, in)
		if err := conn.WriteJSON(out); err != nil {
			return
		}
	}
}

func handleFrame(sessions *mdcore.Sessions, in frameIn) frameOut {
	switch in.Type {
	case "create":
		id, diags, err := sessions.CreateSession(in.ID, []byte(in.Source), mdcore.DefaultOptions())
		if err != nil {
			return frameOut{Type: "error", Error: err.Error()}
		}
		return frameOut{Type: "created", ID: id, Diagnostics: len(diags)}
	case "edit":
		delta, err := sessions.EditSession(in.ID, in.Edits)
		if err != nil {
			return frameOut{Type: "error", ID: in.ID, Error: err.Error()}
		}
		return frameOut{Type: "delta", ID: in.ID, Delta: &delta}
	case "snapshot":
		tree, err := sessions.Snapshot(in.ID)
		if err != nil {
			return frameOut{Type: "error", ID: in.ID, Error: err.Error()}
		}
		raw, err := mdcore.SerializeTree(tree)
		if err != nil {
			return frameOut{Type: "error", ID: in.ID, Error: err.Error()}
		}
		return frameOut{Type: "snapshot", ID: in.ID, Snapshot: raw}
	case "destroy":
		if err := sessions.DestroySession(in.ID); err != nil {
			return frameOut{Type: "error", ID: in.ID, Error: err.Error()}
		}
		return frameOut{Type: "destroyed", ID: in.ID}
	default:
		return frameOut{Type: "error", Error: "unknown frame type: " + in.Type}
	}
}
