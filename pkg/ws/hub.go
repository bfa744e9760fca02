package ws

// Hub maintains the set of active clients and fans messages out to the
// clients registered on a channel.

type clients map[*Client]bool

type broadcast struct {
	channel string
	message []byte
}

type Hub struct {
	clients  clients
	channels map[string]clients

	register   chan *Client
	unregister chan *Client
	broadcasts chan broadcast
}

func NewHub() *Hub {
	return &Hub{
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcasts: make(chan broadcast, 256),
		clients:    make(clients),
		channels:   make(map[string]clients),
	}
}

// Run owns the client and channel maps. Every mutation and broadcast goes
// through this loop.
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.clients[client] = true
			for _, channel := range client.channels {
				if _, ok := h.channels[channel]; !ok {
					h.channels[channel] = make(clients)
				}
				h.channels[channel][client] = true
			}

		case client := <-h.unregister:
			if _, ok := h.clients[client]; ok {
				h.disconnect(client)
			}

		case b := <-h.broadcasts:
			for client := range h.channels[b.channel] {
				select {
				case client.send <- b.message:
				default:
					h.disconnect(client)
				}
			}
		}
	}
}

func (h *Hub) Register(client *Client) {
	h.register <- client
}

func (h *Hub) Unregister(client *Client) {
	h.unregister <- client
}

func (h *Hub) disconnect(client *Client) {
	delete(h.clients, client)
	for _, channel := range client.channels {
		delete(h.channels[channel], client)
	}
	close(client.send)
}

func (h *Hub) BroadcastByChannel(channel string, message []byte) {
	h.broadcasts <- broadcast{channel: channel, message: message}
}
