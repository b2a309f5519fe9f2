package card

import (
	"fmt"
	"strings"
)

// CardType classifica uma carta. Uma carta pode ter mais de um tipo
// (ex: uma carta Treasure que também é Attack), por isso Types é um slice.
type CardType string

const (
	TypeAction   CardType = "action"
	TypeTreasure CardType = "treasure"
	TypeVictory  CardType = "victory"
	TypeCurse    CardType = "curse"
	TypeAttack   CardType = "attack"
	TypeDefense  CardType = "defense"
)

// Card é um valor imutável. As instâncias vivem na biblioteca fixa e são
// compartilhadas por ponteiro entre todas as pilhas de todos os jogadores.
// NUNCA modifique os campos de uma carta em tempo de execução.
// Os campos são exportados com tags JSON porque o estado público da partida
// (incluindo as cartas) é serializado e enviado aos clientes.
type Card struct {
	Name           string     `json:"name"`
	Types          []CardType `json:"types"`
	Description    string     `json:"description"`
	Cost           int        `json:"cost"`
	WinningPoints  int        `json:"winningPoints"`
	FrontCardImage string     `json:"frontCardImage"`
	BackCardImage  string     `json:"backCardImage"`
}

// HasType verifica se a carta carrega o tipo informado.
func (c *Card) HasType(t CardType) bool {
	for _, ct := range c.Types {
		if ct == t {
			return true
		}
	}
	return false
}

func (c *Card) String() string {
	types := make([]string, len(c.Types))
	for i, t := range c.Types {
		types[i] = string(t)
	}
	return fmt.Sprintf("%s [%s] (cost %d)", c.Name, strings.Join(types, ","), c.Cost)
}

// ---- Validação ----

type cardValidator func(*Card) error

func validateName(c *Card) error {
	if c.Name == "" {
		return fmt.Errorf("card has no name")
	}
	return nil
}

func validateTypes(c *Card) error {
	if len(c.Types) == 0 {
		return fmt.Errorf("card %q has no types", c.Name)
	}
	allowed := map[CardType]bool{
		TypeAction: true, TypeTreasure: true, TypeVictory: true,
		TypeCurse: true, TypeAttack: true, TypeDefense: true,
	}
	for _, t := range c.Types {
		if !allowed[t] {
			return fmt.Errorf("card %q has unknown type %q", c.Name, t)
		}
	}
	return nil
}

func validateCost(c *Card) error {
	if c.Cost < 0 {
		return fmt.Errorf("card %q has negative cost %d", c.Name, c.Cost)
	}
	return nil
}

// newCard valida e devolve a carta. É privado: cartas só nascem pela
// biblioteca fixa deste pacote.
func newCard(c Card) (*Card, error) {
	validators := []cardValidator{
		validateName,
		validateTypes,
		validateCost,
	}

	for _, v := range validators {
		if err := v(&c); err != nil {
			return nil, err
		}
	}

	return &c, nil
}
