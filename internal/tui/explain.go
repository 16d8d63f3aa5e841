package tui

const explanation = `Three doors: a car behind one, goats behind the other two. You pick a door,
the host opens one of the other two, and you may stick or switch.

When Monty knows where the car is, he always opens a goat door. Your first
pick is right 1 time in 3, and Monty never disturbs that: the other 2 in 3
all land on the door he leaves closed. Switching wins 2/3 of the time.

When Monty does not know, he opens one of the other doors at random. In 1
game in 3 he shows the car and the game is over. Look only at the games
where he happened to show a goat: your door and the remaining door are now
equally likely to hide the car, so switching wins 1/2 of the time.

The goat you see is the same in both versions. What differs is how it got
there. A host who knows had to show you a goat, which tells you nothing
about your own door and everything about his. A random host who shows a goat
just got lucky, and that luck is evidence for your door as much as for the
other one.

Run the simulation with each host and strategy to see the numbers settle:
about 67% for switching with a host who knows, 33% for staying, and 50%
either way with a random host, with about a third of random-host games
ending early.`
