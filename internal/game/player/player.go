package player

import (
	"math/rand/v2"

	"gamecards/internal/game/card"
)

// Composição do deck inicial e tamanho da mão. Valores fixos do jogo.
const (
	startingCoppers = 7
	startingEstates = 3
	HandSize        = 5
)

// State é o estado de um jogador dentro de UMA partida: identidade mais as
// três pilhas de cartas. Pertence exclusivamente à partida que o criou; todo
// acesso concorrente é serializado pelo lock da partida, nunca aqui.
type State struct {
	PlayerID string
	Name     string

	deck    card.Pile // pilha de compra, índice 0 é o topo
	discard card.Pile
	hand    card.Pile

	// rng é a fonte de aleatoriedade dos embaralhamentos. Injetável via seed
	// para que os testes reproduzam qualquer permutação.
	rng *rand.Rand
}

// NewState cria o estado de um jogador com as pilhas vazias.
// O deck inicial só é concedido quando a partida começa (GainStartingDeck).
func NewState(playerID, name string, seed uint64) *State {
	return &State{
		PlayerID: playerID,
		Name:     name,
		rng:      rand.New(rand.NewPCG(seed, seed)),
	}
}

// GainStartingDeck semeia a pilha de compra com a composição fixa
// (7 Copper + 3 Estate), embaralha e compra a mão inicial de 5 cartas.
// Chamar duas vezes duplica as cartas; o chamador garante uma chamada só.
func (s *State) GainStartingDeck() {
	copper := card.MustGet("Copper")
	estate := card.MustGet("Estate")

	for i := 0; i < startingCoppers; i++ {
		s.deck.Add(copper)
	}
	for i := 0; i < startingEstates; i++ {
		s.deck.Add(estate)
	}

	s.ShuffleDeck()
	s.DrawCards(HandSize)
}

// DrawCards move até count cartas do topo do deck para a mão.
// Quando o deck esvazia no meio da compra, o descarte é reembaralhado e vira
// o novo deck (uma vez por esvaziamento). Se deck e descarte acabarem, a
// compra para em silêncio com menos cartas; não é erro.
func (s *State) DrawCards(count int) {
	for i := 0; i < count; i++ {
		if s.deck.Size() == 0 {
			s.reshuffleDiscardIntoDeck()
		}
		if s.deck.Size() == 0 {
			break
		}

		top, err := s.deck.DrawTop()
		if err != nil {
			break // não acontece: o tamanho acabou de ser checado
		}
		s.hand.Add(top)
	}
}

// DiscardHand move a mão inteira para o descarte. Usado na fase de Cleanup.
func (s *State) DiscardHand() {
	s.discard.AddAll(&s.hand)
}

// ShuffleDeck faz uma permutação sem viés da pilha de compra.
func (s *State) ShuffleDeck() {
	s.deck.Shuffle(s.rng)
}

func (s *State) reshuffleDiscardIntoDeck() {
	if s.discard.Size() == 0 {
		return
	}
	s.deck.AddAll(&s.discard)
	s.ShuffleDeck()
}

// TotalCards conta as cartas do jogador em todas as pilhas. As operações de
// compra e embaralhamento conservam esse total.
func (s *State) TotalCards() int {
	return s.deck.Size() + s.discard.Size() + s.hand.Size()
}

// DeckSize, DiscardSize e HandSize expõem os tamanhos sem entregar as pilhas.
func (s *State) DeckSize() int    { return s.deck.Size() }
func (s *State) DiscardSize() int { return s.discard.Size() }
func (s *State) HandSize() int    { return s.hand.Size() }

// PublicView é a projeção do jogador que vai no broadcast de estado.
//
// Atenção: o conteúdo do deck e do descarte é exposto aqui de propósito,
// porque o cliente existente depende desses campos. Esconder as pilhas dos
// oponentes quebraria o contrato atual com o cliente.
type PublicView struct {
	PlayerID    string       `json:"playerId"`
	PlayerName  string       `json:"playerName"`
	DiscardPile []*card.Card `json:"discardPile"`
	DeckCards   []*card.Card `json:"deckCards"`
	HandCards   []*card.Card `json:"handCards"`
}

// ToPublicView é uma projeção pura: copia os containers, não mexe em nada.
func (s *State) ToPublicView() PublicView {
	return PublicView{
		PlayerID:    s.PlayerID,
		PlayerName:  s.Name,
		DiscardPile: s.discard.Snapshot(),
		DeckCards:   s.deck.Snapshot(),
		HandCards:   s.hand.Snapshot(),
	}
}
