// Package schedule строит круговой календарь чемпионата методом круга:
// команды стоят по кругу, одна фиксируется, остальные вращаются на каждый тур.
package schedule

// Fixture — одна пара кругового календаря.
type Fixture struct {
	HomeTeamID int
	AwayTeamID int
	Matchday   int // номер тура, с единицы
}

// GenerateRoundRobin строит однокруговой календарь: каждая команда играет
// с каждой ровно один раз, ни одна команда не играет дважды в одном туре.
// При нечётном числе команд добавляется фиктивная позиция, и в каждом туре
// одна команда отдыхает. Для честности хозяева чередуются по турам.
func GenerateRoundRobin(teamIDs []int) []Fixture {
	if len(teamIDs) < 2 {
		return nil
	}

	// Копия, чтобы не трогать слайс вызывающего.
	ids := make([]int, len(teamIDs))
	copy(ids, teamIDs)

	const bye = 0
	if len(ids)%2 != 0 {
		ids = append(ids, bye)
	}

	n := len(ids)
	rounds := n - 1
	half := n / 2

	fixtures := make([]Fixture, 0, rounds*half)
	for round := 0; round < rounds; round++ {
		for i := 0; i < half; i++ {
			a := ids[i]
			b := ids[n-1-i]
			if a == bye || b == bye {
				continue
			}
			home, away := a, b
			// Первая позиция зафиксирована; чередуем ей хозяйское поле,
			// иначе она провела бы все матчи дома.
			if i == 0 && round%2 == 1 {
				home, away = b, a
			}
			fixtures = append(fixtures, Fixture{
				HomeTeamID: home,
				AwayTeamID: away,
				Matchday:   round + 1,
			})
		}

		// Вращение: первый элемент на месте, остальные сдвигаются по кругу.
		last := ids[n-1]
		copy(ids[2:], ids[1:n-1])
		ids[1] = last
	}
	return fixtures
}
