package card

import (
	"fmt"
	"math/rand/v2"
	"strings"
)

// Pile é uma pilha ordenada de cartas. O índice 0 é o topo.
// A pilha guarda ponteiros para as cartas imutáveis da biblioteca,
// então mover cartas entre pilhas nunca copia nem duplica nada.
type Pile []*Card

// Size retorna o número de cartas na pilha.
// A verificação de nil torna o método seguro mesmo em ponteiro zero.
func (p *Pile) Size() int {
	if p == nil {
		return 0
	}
	return len(*p)
}

// Shuffle embaralha a pilha com Fisher-Yates. A fonte de aleatoriedade é
// injetada para que os testes possam usar uma seed fixa e obter sempre a
// mesma permutação.
func (p *Pile) Shuffle(r *rand.Rand) {
	n := p.Size()
	for i := n - 1; i > 0; i-- {
		j := r.IntN(i + 1)
		(*p)[i], (*p)[j] = (*p)[j], (*p)[i]
	}
}

// DrawTop remove e retorna a carta do topo.
func (p *Pile) DrawTop() (*Card, error) {
	if p.Size() == 0 {
		return nil, fmt.Errorf("pile is empty")
	}

	top := (*p)[0]
	*p = (*p)[1:]
	return top, nil
}

// Add coloca uma carta no fundo da pilha.
func (p *Pile) Add(c *Card) {
	*p = append(*p, c)
}

// AddAll move todas as cartas de other para o fundo desta pilha e esvazia
// other. É a operação usada para reembaralhar o descarte de volta no deck e
// para descartar a mão inteira no fim do turno.
func (p *Pile) AddAll(other *Pile) {
	*p = append(*p, *other...)
	*other = (*other)[:0]
}

// Snapshot devolve uma cópia do slice, para projeções de estado público.
// As cartas em si continuam compartilhadas; só o container é copiado.
func (p *Pile) Snapshot() []*Card {
	if p.Size() == 0 {
		return []*Card{}
	}
	out := make([]*Card, len(*p))
	copy(out, *p)
	return out
}

func (p *Pile) String() string {
	if p.Size() == 0 {
		return "(Empty)"
	}

	var sb strings.Builder
	for i, c := range *p {
		sb.WriteString(fmt.Sprintf("[%d]: %s\n", i, c))
	}
	return sb.String()
}
